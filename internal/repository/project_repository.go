package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/j1progress/progress-api/internal/models"
)

// ProjectRepository persists project rows, including soft-deleted ones.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository constructs the repository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns every project row, trashed ones included. Filtering by
// deletion state happens in the view-model layer.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	const query = `SELECT id, unit_id, name, fiscal_year, group_id, deleted_at FROM projects ORDER BY id`
	projects := []models.Project{}
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetByID returns one project row.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	const query = `SELECT id, unit_id, name, fiscal_year, group_id, deleted_at FROM projects WHERE id = $1`
	var project models.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &project, nil
}

// Upsert writes the whole project row keyed by id (last write wins).
func (r *ProjectRepository) Upsert(ctx context.Context, project *models.Project) error {
	const query = `INSERT INTO projects (id, unit_id, name, fiscal_year, group_id, deleted_at)
VALUES (:id, :unit_id, :name, :fiscal_year, :group_id, :deleted_at)
ON CONFLICT (id) DO UPDATE SET unit_id = EXCLUDED.unit_id, name = EXCLUDED.name, fiscal_year = EXCLUDED.fiscal_year, group_id = EXCLUDED.group_id, deleted_at = EXCLUDED.deleted_at`
	if _, err := r.db.NamedExecContext(ctx, query, project); err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}
	return nil
}

// Delete removes the project row.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// DeleteByUnit removes every project owned by the unit and returns the
// affected project ids for downstream bookkeeping.
func (r *ProjectRepository) DeleteByUnit(ctx context.Context, unitID string) ([]string, error) {
	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, `DELETE FROM projects WHERE unit_id = $1 RETURNING id`, unitID); err != nil {
		return nil, fmt.Errorf("delete projects by unit: %w", err)
	}
	return ids, nil
}

// SetDeletedAt sets or clears the soft-delete marker.
func (r *ProjectRepository) SetDeletedAt(ctx context.Context, id string, deletedAt *int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE projects SET deleted_at = $1 WHERE id = $2`, deletedAt, id); err != nil {
		return fmt.Errorf("set project deleted_at: %w", err)
	}
	return nil
}

// ClearGroup detaches every member of the group without touching anything else.
func (r *ProjectRepository) ClearGroup(ctx context.Context, groupID string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE projects SET group_id = NULL WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("clear project group: %w", err)
	}
	return nil
}

// ListExpired returns projects whose soft-delete marker is older than the
// cutoff (epoch millis).
func (r *ProjectRepository) ListExpired(ctx context.Context, cutoff int64) ([]models.Project, error) {
	const query = `SELECT id, unit_id, name, fiscal_year, group_id, deleted_at FROM projects WHERE deleted_at IS NOT NULL AND deleted_at < $1 ORDER BY deleted_at`
	projects := []models.Project{}
	if err := r.db.SelectContext(ctx, &projects, query, cutoff); err != nil {
		return nil, fmt.Errorf("list expired projects: %w", err)
	}
	return projects, nil
}

// Count returns the number of project rows, used by the first-run seeder.
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM projects`); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}
