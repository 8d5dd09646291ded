package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
)

type projectStore interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListUnits(ctx context.Context) ([]models.Unit, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	GetUnit(ctx context.Context, id string) (*models.Unit, error)
	SaveProject(ctx context.Context, project *models.Project, previous *models.Project) error
	DeleteProject(ctx context.Context, id string) error
	SoftDeleteProject(ctx context.Context, id string) error
	RestoreProject(ctx context.Context, id string) error
}

// ProjectInput is the payload for creating or updating a project.
type ProjectInput struct {
	UnitID     string  `json:"unitId" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	FiscalYear string  `json:"fiscalYear"`
	GroupID    *string `json:"groupId"`
}

// ProjectService manages the project collection, including the trash
// lifecycle.
type ProjectService struct {
	store     projectStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProjectService constructs a ProjectService.
func NewProjectService(store projectStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ProjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{store: store, cache: cache, validator: validate, logger: logger}
}

// List returns projects filtered by the given facets.
func (s *ProjectService) List(ctx context.Context, filter ProjectFilter) ([]models.Project, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.store.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProjects(projects, units, filter), nil
}

// ListTrash returns only soft-deleted projects.
func (s *ProjectService) ListTrash(ctx context.Context) ([]models.Project, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	trash := make([]models.Project, 0)
	for _, p := range projects {
		if !p.Active() {
			trash = append(trash, p)
		}
	}
	return trash, nil
}

// Create registers a new project after checking the owning unit exists.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}
	project := models.Project{
		ID:         uuid.NewString(),
		UnitID:     input.UnitID,
		Name:       strings.TrimSpace(input.Name),
		FiscalYear: fiscalYearOrDefault(input.FiscalYear),
		GroupID:    input.GroupID,
	}
	if err := s.store.SaveProject(ctx, &project, nil); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)
	return &project, nil
}

// Update overwrites an existing project. When the name or owning unit
// changed the store rewrites the denormalized copies on the project's
// reports.
func (s *ProjectService) Update(ctx context.Context, id string, input ProjectInput) (*models.Project, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}
	previous, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}
	project := models.Project{
		ID:         id,
		UnitID:     input.UnitID,
		Name:       strings.TrimSpace(input.Name),
		FiscalYear: fiscalYearOrDefault(input.FiscalYear),
		GroupID:    input.GroupID,
		DeletedAt:  previous.DeletedAt,
	}
	if err := s.store.SaveProject(ctx, &project, previous); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)
	return &project, nil
}

// Trash soft-deletes the project.
func (s *ProjectService) Trash(ctx context.Context, id string) error {
	if _, err := s.store.GetProject(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}
	if err := s.store.SoftDeleteProject(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// Restore pulls the project back out of the trash unchanged.
func (s *ProjectService) Restore(ctx context.Context, id string) error {
	if _, err := s.store.GetProject(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}
	if err := s.store.RestoreProject(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// Delete permanently removes the project and its reports.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetProject(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "project not found")
	}
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project permanently deleted", zap.String("project_id", id))
	s.invalidateDashboard(ctx)
	return nil
}

func (s *ProjectService) validateInput(ctx context.Context, input ProjectInput) error {
	if err := s.validator.Struct(input); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid project payload")
	}
	if strings.TrimSpace(input.Name) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name must not be blank")
	}
	if _, err := s.store.GetUnit(ctx, input.UnitID); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "referenced unit does not exist")
	}
	return nil
}

func (s *ProjectService) invalidateDashboard(ctx context.Context) {
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}
}

func fiscalYearOrDefault(year string) string {
	if strings.TrimSpace(year) == "" {
		return models.DefaultFiscalYear
	}
	return strings.TrimSpace(year)
}
