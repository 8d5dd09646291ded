package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
)

type reportStore interface {
	ListReports(ctx context.Context) ([]models.Report, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListUnits(ctx context.Context) ([]models.Unit, error)
	GetReport(ctx context.Context, id string) (*models.Report, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	SaveReport(ctx context.Context, report *models.Report) error
	DeleteReport(ctx context.Context, id string) error
}

// ReportInput is the payload for submitting a progress report. ProjectName
// and UnitID are not accepted from the caller; they are stamped from the
// referenced project so the denormalized copies start out consistent.
type ReportInput struct {
	ProjectID       string `json:"projectId" validate:"required"`
	ReportDateStart string `json:"reportDateStart" validate:"required"`
	ReportDateEnd   string `json:"reportDateEnd" validate:"required"`
	PastPerformance string `json:"pastPerformance"`
	NextPlan        string `json:"nextPlan"`
	Progress        int    `json:"progress" validate:"min=0,max=100"`
	Obstacles       string `json:"obstacles"`
	Remarks         string `json:"remarks"`
	FileLink        string `json:"fileLink"`
}

// ReportService manages report submission and retrieval.
type ReportService struct {
	store     reportStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(store reportStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{store: store, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// List returns reports narrowed by the filter.
func (s *ReportService) List(ctx context.Context, filter ReportFilter) ([]models.Report, error) {
	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.store.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return FilterReports(reports, units, projects, filter), nil
}

// Submit stores a new report against the referenced project. Unit users may
// only report on their own unit's projects; admins may report on any.
func (s *ReportService) Submit(ctx context.Context, claims *models.JWTClaims, input ReportInput) (*models.Report, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}
	if input.ReportDateEnd < input.ReportDateStart {
		return nil, appErrors.Clone(appErrors.ErrValidation, "reportDateEnd precedes reportDateStart")
	}

	project, err := s.store.GetProject(ctx, input.ProjectID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "referenced project does not exist")
	}
	if claims != nil && claims.Role != models.RoleAdmin && claims.UnitID != project.UnitID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "project belongs to another unit")
	}

	report := models.Report{
		ID:              uuid.NewString(),
		UnitID:          project.UnitID,
		ProjectID:       project.ID,
		ProjectName:     project.Name,
		ReportDateStart: input.ReportDateStart,
		ReportDateEnd:   input.ReportDateEnd,
		PastPerformance: strings.TrimSpace(input.PastPerformance),
		NextPlan:        strings.TrimSpace(input.NextPlan),
		Progress:        input.Progress,
		Obstacles:       strings.TrimSpace(input.Obstacles),
		Remarks:         strings.TrimSpace(input.Remarks),
		FileLink:        strings.TrimSpace(input.FileLink),
		Timestamp:       s.now().UnixMilli(),
	}
	if err := s.store.SaveReport(ctx, &report); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)
	return &report, nil
}

// Delete removes a report. Unit users may only remove their own unit's
// reports.
func (s *ReportService) Delete(ctx context.Context, claims *models.JWTClaims, id string) error {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "report not found")
	}
	if claims != nil && claims.Role != models.RoleAdmin && claims.UnitID != report.UnitID {
		return appErrors.Clone(appErrors.ErrForbidden, "report belongs to another unit")
	}
	if err := s.store.DeleteReport(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// Prefill returns the most recent report for the project, used by the entry
// form to carry forward the previous period's values. Nil means the project
// has no prior report.
func (s *ReportService) Prefill(ctx context.Context, projectID string) (*models.Report, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "projectId is required")
	}
	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	latest := LatestReportPerProject([]models.Project{{ID: projectID}}, reports)
	if r, ok := latest[projectID]; ok {
		return &r, nil
	}
	return nil, nil
}

func (s *ReportService) invalidateDashboard(ctx context.Context) {
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}
}
