package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
)

type seedStore interface {
	ListUnits(ctx context.Context) ([]models.Unit, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	SaveUnit(ctx context.Context, unit *models.Unit) error
	SaveProject(ctx context.Context, project *models.Project, previous *models.Project) error
}

// SeedService populates an empty store with the default unit roster and
// project catalogue on startup. A store with any existing unit or project is
// left untouched.
type SeedService struct {
	store  seedStore
	logger *zap.Logger
}

// NewSeedService constructs a SeedService.
func NewSeedService(store seedStore, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{store: store, logger: logger}
}

// Run seeds the defaults when both collections are empty and reports whether
// seeding happened.
func (s *SeedService) Run(ctx context.Context) (bool, error) {
	units, err := s.store.ListUnits(ctx)
	if err != nil {
		return false, err
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return false, err
	}
	if len(units) > 0 || len(projects) > 0 {
		return false, nil
	}

	for i := range models.DefaultUnits {
		unit := models.DefaultUnits[i]
		if err := s.store.SaveUnit(ctx, &unit); err != nil {
			return false, err
		}
	}
	for i := range models.DefaultProjects {
		project := models.DefaultProjects[i]
		if err := s.store.SaveProject(ctx, &project, nil); err != nil {
			return false, err
		}
	}
	s.logger.Info("seeded default data",
		zap.Int("units", len(models.DefaultUnits)),
		zap.Int("projects", len(models.DefaultProjects)),
	)
	return true, nil
}
