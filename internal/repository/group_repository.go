package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/j1progress/progress-api/internal/models"
)

// GroupRepository persists project group rows.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs the repository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// List returns every project group ordered by name.
func (r *GroupRepository) List(ctx context.Context) ([]models.ProjectGroup, error) {
	const query = `SELECT id, name FROM project_groups ORDER BY name`
	groups := []models.ProjectGroup{}
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, fmt.Errorf("list project groups: %w", err)
	}
	return groups, nil
}

// Upsert writes the whole group row keyed by id.
func (r *GroupRepository) Upsert(ctx context.Context, group *models.ProjectGroup) error {
	const query = `INSERT INTO project_groups (id, name)
VALUES (:id, :name)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("upsert project group: %w", err)
	}
	return nil
}

// Delete removes the group row. Ungrouping member projects is the store's
// responsibility.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete project group: %w", err)
	}
	return nil
}
