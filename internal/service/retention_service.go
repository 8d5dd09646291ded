package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
)

type retentionStore interface {
	ListExpiredProjects(ctx context.Context, cutoff int64) ([]models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// RetentionService hard-deletes trashed projects whose deletedAt stamp has
// aged past the retention window. It runs once at startup; there is no
// recurring schedule.
type RetentionService struct {
	store  retentionStore
	window time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewRetentionService constructs a RetentionService.
func NewRetentionService(store retentionStore, window time.Duration, logger *zap.Logger) *RetentionService {
	if window <= 0 {
		window = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetentionService{store: store, window: window, logger: logger, now: time.Now}
}

// Sweep removes every expired project through the same permanent-delete
// path as a manual delete, report cascade included. It keeps going past
// individual failures so one bad row cannot block the rest, and returns the
// number of projects removed.
func (s *RetentionService) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.window).UnixMilli()
	expired, err := s.store.ListExpiredProjects(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, p := range expired {
		if err := s.store.DeleteProject(ctx, p.ID); err != nil {
			s.logger.Warn("retention sweep could not delete project",
				zap.String("project_id", p.ID), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("retention sweep finished",
			zap.Int("removed", removed), zap.Int("candidates", len(expired)))
	}
	return removed, nil
}
