package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/j1progress/progress-api/internal/models"
)

// ReportRepository persists report rows.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// List returns every report ordered by submission time descending.
func (r *ReportRepository) List(ctx context.Context) ([]models.Report, error) {
	const query = `SELECT id, unit_id, project_id, project_name, report_date_start, report_date_end, past_performance, next_plan, progress, obstacles, remarks, file_link, submitted_at
FROM reports ORDER BY submitted_at DESC`
	reports := []models.Report{}
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// GetByID returns one report row.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	const query = `SELECT id, unit_id, project_id, project_name, report_date_start, report_date_end, past_performance, next_plan, progress, obstacles, remarks, file_link, submitted_at
FROM reports WHERE id = $1`
	var report models.Report
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &report, nil
}

// Upsert writes the whole report row keyed by id (last write wins).
func (r *ReportRepository) Upsert(ctx context.Context, report *models.Report) error {
	const query = `INSERT INTO reports (id, unit_id, project_id, project_name, report_date_start, report_date_end, past_performance, next_plan, progress, obstacles, remarks, file_link, submitted_at)
VALUES (:id, :unit_id, :project_id, :project_name, :report_date_start, :report_date_end, :past_performance, :next_plan, :progress, :obstacles, :remarks, :file_link, :submitted_at)
ON CONFLICT (id) DO UPDATE SET unit_id = EXCLUDED.unit_id, project_id = EXCLUDED.project_id, project_name = EXCLUDED.project_name, report_date_start = EXCLUDED.report_date_start, report_date_end = EXCLUDED.report_date_end, past_performance = EXCLUDED.past_performance, next_plan = EXCLUDED.next_plan, progress = EXCLUDED.progress, obstacles = EXCLUDED.obstacles, remarks = EXCLUDED.remarks, file_link = EXCLUDED.file_link, submitted_at = EXCLUDED.submitted_at`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("upsert report: %w", err)
	}
	return nil
}

// Delete removes the report row.
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

// DeleteByProject removes every report referencing the project.
func (r *ReportRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("delete reports by project: %w", err)
	}
	return nil
}

// DeleteByUnit removes every report belonging to the unit. Reports carry
// unit_id directly, so this is independent of the project cascade.
func (r *ReportRepository) DeleteByUnit(ctx context.Context, unitID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM reports WHERE unit_id = $1`, unitID); err != nil {
		return fmt.Errorf("delete reports by unit: %w", err)
	}
	return nil
}

// SyncProjectFields rewrites the denormalized project name and owning unit
// on every report of the project. One statement, no pagination bound.
func (r *ReportRepository) SyncProjectFields(ctx context.Context, projectID, projectName, unitID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE reports SET project_name = $1, unit_id = $2 WHERE project_id = $3`, projectName, unitID, projectID)
	if err != nil {
		return 0, fmt.Errorf("sync report project fields: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sync report project fields: %w", err)
	}
	return affected, nil
}
