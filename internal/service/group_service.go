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

type groupStore interface {
	ListGroups(ctx context.Context) ([]models.ProjectGroup, error)
	SaveGroup(ctx context.Context, group *models.ProjectGroup) error
	DeleteGroup(ctx context.Context, id string) error
}

// GroupInput is the payload for creating or renaming a project group.
type GroupInput struct {
	Name string `json:"name" validate:"required"`
}

// GroupService manages project groups.
type GroupService struct {
	store     groupStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGroupService constructs a GroupService.
func NewGroupService(store groupStore, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{store: store, validator: validate, logger: logger}
}

// List returns all project groups.
func (s *GroupService) List(ctx context.Context) ([]models.ProjectGroup, error) {
	return s.store.ListGroups(ctx)
}

// Create registers a new group.
func (s *GroupService) Create(ctx context.Context, input GroupInput) (*models.ProjectGroup, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	group := models.ProjectGroup{ID: uuid.NewString(), Name: strings.TrimSpace(input.Name)}
	if err := s.store.SaveGroup(ctx, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Update renames an existing group.
func (s *GroupService) Update(ctx context.Context, id string, input GroupInput) (*models.ProjectGroup, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	group := models.ProjectGroup{ID: id, Name: strings.TrimSpace(input.Name)}
	if err := s.store.SaveGroup(ctx, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes the group; member projects are ungrouped by the store.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteGroup(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project group deleted", zap.String("group_id", id))
	return nil
}

func (s *GroupService) validateInput(input GroupInput) error {
	if err := s.validator.Struct(input); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	if strings.TrimSpace(input.Name) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name must not be blank")
	}
	return nil
}
