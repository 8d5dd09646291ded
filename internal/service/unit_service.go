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

type unitStore interface {
	ListUnits(ctx context.Context) ([]models.Unit, error)
	GetUnit(ctx context.Context, id string) (*models.Unit, error)
	SaveUnit(ctx context.Context, unit *models.Unit) error
	DeleteUnit(ctx context.Context, id string) error
}

// UnitInput is the payload for creating or updating a unit.
type UnitInput struct {
	Name      string `json:"name" validate:"required"`
	ShortName string `json:"shortName" validate:"required"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// UnitService manages the unit collection.
type UnitService struct {
	store     unitStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUnitService constructs a UnitService.
func NewUnitService(store unitStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *UnitService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnitService{store: store, cache: cache, validator: validate, logger: logger}
}

// List returns all units with credentials stripped.
func (s *UnitService) List(ctx context.Context) ([]models.Unit, error) {
	units, err := s.store.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	for i := range units {
		units[i].Password = ""
	}
	return units, nil
}

// Create registers a new unit. A missing id is generated.
func (s *UnitService) Create(ctx context.Context, input UnitInput) (*models.Unit, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	unit := models.Unit{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		ShortName: strings.TrimSpace(input.ShortName),
		Username:  strings.TrimSpace(input.Username),
		Password:  input.Password,
	}
	if err := s.store.SaveUnit(ctx, &unit); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)
	unit.Password = ""
	return &unit, nil
}

// Update overwrites an existing unit. A blank password keeps the stored one.
func (s *UnitService) Update(ctx context.Context, id string, input UnitInput) (*models.Unit, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	existing, err := s.store.GetUnit(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unit not found")
	}
	unit := models.Unit{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		ShortName: strings.TrimSpace(input.ShortName),
		Username:  strings.TrimSpace(input.Username),
		Password:  input.Password,
	}
	if unit.Password == "" {
		unit.Password = existing.Password
	}
	if err := s.store.SaveUnit(ctx, &unit); err != nil {
		return nil, err
	}
	s.invalidateDashboard(ctx)
	unit.Password = ""
	return &unit, nil
}

// Delete removes the unit along with its projects and reports.
func (s *UnitService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetUnit(ctx, id); err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "unit not found")
	}
	if err := s.store.DeleteUnit(ctx, id); err != nil {
		return err
	}
	s.logger.Info("unit deleted with cascade", zap.String("unit_id", id))
	s.invalidateDashboard(ctx)
	return nil
}

func (s *UnitService) validateInput(input UnitInput) error {
	if err := s.validator.Struct(input); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unit payload")
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.ShortName) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name and shortName must not be blank")
	}
	return nil
}

func (s *UnitService) invalidateDashboard(ctx context.Context) {
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}
}
