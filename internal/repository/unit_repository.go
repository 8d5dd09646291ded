package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/j1progress/progress-api/internal/models"
)

// UnitRepository persists unit rows.
type UnitRepository struct {
	db *sqlx.DB
}

// NewUnitRepository constructs the repository.
func NewUnitRepository(db *sqlx.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

// List returns every unit ordered by id.
func (r *UnitRepository) List(ctx context.Context) ([]models.Unit, error) {
	const query = `SELECT id, name, short_name, username, password FROM units ORDER BY id`
	units := []models.Unit{}
	if err := r.db.SelectContext(ctx, &units, query); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

// GetByID returns one unit row.
func (r *UnitRepository) GetByID(ctx context.Context, id string) (*models.Unit, error) {
	const query = `SELECT id, name, short_name, username, password FROM units WHERE id = $1`
	var unit models.Unit
	if err := r.db.GetContext(ctx, &unit, query, id); err != nil {
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &unit, nil
}

// Upsert writes the whole unit row keyed by id (last write wins).
func (r *UnitRepository) Upsert(ctx context.Context, unit *models.Unit) error {
	const query = `INSERT INTO units (id, name, short_name, username, password)
VALUES (:id, :name, :short_name, :username, :password)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, short_name = EXCLUDED.short_name, username = EXCLUDED.username, password = EXCLUDED.password`
	if _, err := r.db.NamedExecContext(ctx, query, unit); err != nil {
		return fmt.Errorf("upsert unit: %w", err)
	}
	return nil
}

// Delete removes the unit row. Dependent projects and reports are removed
// by the store's cascade, not here.
func (r *UnitRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}

// Count returns the number of unit rows, used by the first-run seeder.
func (r *UnitRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM units`); err != nil {
		return 0, fmt.Errorf("count units: %w", err)
	}
	return count, nil
}
