package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
)

type unitRepository interface {
	List(ctx context.Context) ([]models.Unit, error)
	GetByID(ctx context.Context, id string) (*models.Unit, error)
	Upsert(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, id string) error
}

type projectRepository interface {
	List(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Upsert(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
	DeleteByUnit(ctx context.Context, unitID string) ([]string, error)
	SetDeletedAt(ctx context.Context, id string, deletedAt *int64) error
	ClearGroup(ctx context.Context, groupID string) error
	ListExpired(ctx context.Context, cutoff int64) ([]models.Project, error)
}

type groupRepository interface {
	List(ctx context.Context) ([]models.ProjectGroup, error)
	Upsert(ctx context.Context, group *models.ProjectGroup) error
	Delete(ctx context.Context, id string) error
}

type reportRepository interface {
	List(ctx context.Context) ([]models.Report, error)
	GetByID(ctx context.Context, id string) (*models.Report, error)
	Upsert(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
	DeleteByUnit(ctx context.Context, unitID string) error
	SyncProjectFields(ctx context.Context, projectID, projectName, unitID string) (int64, error)
}

// Collection names a subscribable collection.
type Collection string

const (
	CollectionUnits    Collection = "units"
	CollectionProjects Collection = "projects"
	CollectionGroups   Collection = "groups"
	CollectionReports  Collection = "reports"
)

// Store is the data access adapter over the four collections. Every
// committed mutation fans the full refreshed collection out to subscribers,
// and cross-collection side effects (denormalization sync, cascade deletes)
// run here rather than in the repositories.
//
// Cascades are sequential statements, not a transaction: a failure after the
// primary write can leave dependent rows stale until the next successful
// write. Callers must treat any returned error as "no change guaranteed".
type Store struct {
	units    unitRepository
	projects projectRepository
	groups   groupRepository
	reports  reportRepository
	logger   *zap.Logger
	now      func() time.Time

	mu          sync.Mutex
	nextSubID   int
	unitSubs    map[int]func([]models.Unit)
	projectSubs map[int]func([]models.Project)
	groupSubs   map[int]func([]models.ProjectGroup)
	reportSubs  map[int]func([]models.Report)

	// Per-collection delivery locks held across the snapshot load and the
	// fan-out, so concurrent writers cannot deliver a newer snapshot before
	// an older one.
	unitDelivery    sync.Mutex
	projectDelivery sync.Mutex
	groupDelivery   sync.Mutex
	reportDelivery  sync.Mutex
}

// New constructs the store adapter.
func New(units unitRepository, projects projectRepository, groups groupRepository, reports reportRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		units:       units,
		projects:    projects,
		groups:      groups,
		reports:     reports,
		logger:      logger,
		now:         time.Now,
		unitSubs:    make(map[int]func([]models.Unit)),
		projectSubs: make(map[int]func([]models.Project)),
		groupSubs:   make(map[int]func([]models.ProjectGroup)),
		reportSubs:  make(map[int]func([]models.Report)),
	}
}

// --- subscriptions ---

// SubscribeUnits registers a listener that immediately receives the current
// unit collection and again after every committed mutation. The returned
// func unsubscribes. The delivery lock is held across load, registration and
// the initial callback so the first snapshot cannot arrive after a newer one.
func (s *Store) SubscribeUnits(ctx context.Context, cb func([]models.Unit)) (func(), error) {
	s.unitDelivery.Lock()
	defer s.unitDelivery.Unlock()
	units, err := s.ListUnits(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.unitSubs[id] = cb
	s.mu.Unlock()
	cb(units)
	return func() {
		s.mu.Lock()
		delete(s.unitSubs, id)
		s.mu.Unlock()
	}, nil
}

// SubscribeProjects registers a listener for the project collection.
func (s *Store) SubscribeProjects(ctx context.Context, cb func([]models.Project)) (func(), error) {
	s.projectDelivery.Lock()
	defer s.projectDelivery.Unlock()
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.projectSubs[id] = cb
	s.mu.Unlock()
	cb(projects)
	return func() {
		s.mu.Lock()
		delete(s.projectSubs, id)
		s.mu.Unlock()
	}, nil
}

// SubscribeGroups registers a listener for the project-group collection.
func (s *Store) SubscribeGroups(ctx context.Context, cb func([]models.ProjectGroup)) (func(), error) {
	s.groupDelivery.Lock()
	defer s.groupDelivery.Unlock()
	groups, err := s.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.groupSubs[id] = cb
	s.mu.Unlock()
	cb(groups)
	return func() {
		s.mu.Lock()
		delete(s.groupSubs, id)
		s.mu.Unlock()
	}, nil
}

// SubscribeReports registers a listener for the report collection.
func (s *Store) SubscribeReports(ctx context.Context, cb func([]models.Report)) (func(), error) {
	s.reportDelivery.Lock()
	defer s.reportDelivery.Unlock()
	reports, err := s.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.reportSubs[id] = cb
	s.mu.Unlock()
	cb(reports)
	return func() {
		s.mu.Lock()
		delete(s.reportSubs, id)
		s.mu.Unlock()
	}, nil
}

func (s *Store) notify(ctx context.Context, collections ...Collection) {
	for _, collection := range collections {
		switch collection {
		case CollectionUnits:
			s.notifyUnits(ctx)
		case CollectionProjects:
			s.notifyProjects(ctx)
		case CollectionGroups:
			s.notifyGroups(ctx)
		case CollectionReports:
			s.notifyReports(ctx)
		}
	}
}

func (s *Store) notifyUnits(ctx context.Context) {
	s.unitDelivery.Lock()
	defer s.unitDelivery.Unlock()
	s.mu.Lock()
	subs := make([]func([]models.Unit), 0, len(s.unitSubs))
	for _, cb := range s.unitSubs {
		subs = append(subs, cb)
	}
	s.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	units, err := s.ListUnits(ctx)
	if err != nil {
		s.logger.Warn("skip unit snapshot delivery", zap.Error(err))
		return
	}
	for _, cb := range subs {
		cb(units)
	}
}

func (s *Store) notifyProjects(ctx context.Context) {
	s.projectDelivery.Lock()
	defer s.projectDelivery.Unlock()
	s.mu.Lock()
	subs := make([]func([]models.Project), 0, len(s.projectSubs))
	for _, cb := range s.projectSubs {
		subs = append(subs, cb)
	}
	s.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	projects, err := s.ListProjects(ctx)
	if err != nil {
		s.logger.Warn("skip project snapshot delivery", zap.Error(err))
		return
	}
	for _, cb := range subs {
		cb(projects)
	}
}

func (s *Store) notifyGroups(ctx context.Context) {
	s.groupDelivery.Lock()
	defer s.groupDelivery.Unlock()
	s.mu.Lock()
	subs := make([]func([]models.ProjectGroup), 0, len(s.groupSubs))
	for _, cb := range s.groupSubs {
		subs = append(subs, cb)
	}
	s.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	groups, err := s.ListGroups(ctx)
	if err != nil {
		s.logger.Warn("skip group snapshot delivery", zap.Error(err))
		return
	}
	for _, cb := range subs {
		cb(groups)
	}
}

func (s *Store) notifyReports(ctx context.Context) {
	s.reportDelivery.Lock()
	defer s.reportDelivery.Unlock()
	s.mu.Lock()
	subs := make([]func([]models.Report), 0, len(s.reportSubs))
	for _, cb := range s.reportSubs {
		subs = append(subs, cb)
	}
	s.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	reports, err := s.ListReports(ctx)
	if err != nil {
		s.logger.Warn("skip report snapshot delivery", zap.Error(err))
		return
	}
	for _, cb := range subs {
		cb(reports)
	}
}

// --- reads ---

// ListUnits returns the unit collection.
func (s *Store) ListUnits(ctx context.Context) ([]models.Unit, error) {
	units, err := s.units.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load units")
	}
	return units, nil
}

// ListProjects returns the project collection, trashed projects included.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load projects")
	}
	return projects, nil
}

// ListGroups returns the project-group collection.
func (s *Store) ListGroups(ctx context.Context) ([]models.ProjectGroup, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load project groups")
	}
	return groups, nil
}

// ListReports returns the report collection.
func (s *Store) ListReports(ctx context.Context) ([]models.Report, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load reports")
	}
	return reports, nil
}

// GetUnit returns one unit.
func (s *Store) GetUnit(ctx context.Context, id string) (*models.Unit, error) {
	return s.units.GetByID(ctx, id)
}

// GetProject returns one project.
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return s.projects.GetByID(ctx, id)
}

// GetReport returns one report.
func (s *Store) GetReport(ctx context.Context, id string) (*models.Report, error) {
	return s.reports.GetByID(ctx, id)
}

// --- units ---

// SaveUnit upserts the unit by id.
func (s *Store) SaveUnit(ctx context.Context, unit *models.Unit) error {
	if err := s.units.Upsert(ctx, unit); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to save unit")
	}
	s.notify(ctx, CollectionUnits)
	return nil
}

// DeleteUnit removes the unit, all its projects, and all its reports.
// Reports are matched on unit_id directly, independent of the project
// cascade.
func (s *Store) DeleteUnit(ctx context.Context, id string) error {
	if err := s.units.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to delete unit")
	}
	if _, err := s.projects.DeleteByUnit(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "unit deleted but project cascade failed")
	}
	if err := s.reports.DeleteByUnit(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "unit deleted but report cascade failed")
	}
	s.notify(ctx, CollectionUnits, CollectionProjects, CollectionReports)
	return nil
}

// --- groups ---

// SaveGroup upserts the project group by id.
func (s *Store) SaveGroup(ctx context.Context, group *models.ProjectGroup) error {
	if err := s.groups.Upsert(ctx, group); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to save project group")
	}
	s.notify(ctx, CollectionGroups)
	return nil
}

// DeleteGroup removes the group and detaches member projects. Members are
// ungrouped, never deleted.
func (s *Store) DeleteGroup(ctx context.Context, id string) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to delete project group")
	}
	if err := s.projects.ClearGroup(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "group deleted but ungrouping failed")
	}
	s.notify(ctx, CollectionGroups, CollectionProjects)
	return nil
}

// --- projects ---

// SaveProject upserts the project. When previous is supplied and the name
// or owning unit changed, the denormalized copies on every report of the
// project are rewritten before SaveProject returns.
func (s *Store) SaveProject(ctx context.Context, project *models.Project, previous *models.Project) error {
	if err := s.projects.Upsert(ctx, project); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to save project")
	}
	cascaded := false
	if previous != nil && (previous.Name != project.Name || previous.UnitID != project.UnitID) {
		affected, err := s.reports.SyncProjectFields(ctx, project.ID, project.Name, project.UnitID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "project saved but report sync failed")
		}
		cascaded = affected > 0
		s.logger.Info("project denormalization synced",
			zap.String("project_id", project.ID),
			zap.Int64("reports_updated", affected),
		)
	}
	if cascaded {
		s.notify(ctx, CollectionProjects, CollectionReports)
	} else {
		s.notify(ctx, CollectionProjects)
	}
	return nil
}

// DeleteProject permanently removes the project and every report
// referencing it. Used both by manual permanent delete and the retention
// sweep.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to delete project")
	}
	if err := s.reports.DeleteByProject(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "project deleted but report cascade failed")
	}
	s.notify(ctx, CollectionProjects, CollectionReports)
	return nil
}

// SoftDeleteProject moves the project into the trash by stamping deletedAt.
func (s *Store) SoftDeleteProject(ctx context.Context, id string) error {
	deletedAt := s.now().UnixMilli()
	if err := s.projects.SetDeletedAt(ctx, id, &deletedAt); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to trash project")
	}
	s.notify(ctx, CollectionProjects)
	return nil
}

// RestoreProject clears the soft-delete marker.
func (s *Store) RestoreProject(ctx context.Context, id string) error {
	if err := s.projects.SetDeletedAt(ctx, id, nil); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to restore project")
	}
	s.notify(ctx, CollectionProjects)
	return nil
}

// ListExpiredProjects returns trashed projects older than the cutoff.
func (s *Store) ListExpiredProjects(ctx context.Context, cutoff int64) ([]models.Project, error) {
	projects, err := s.projects.ListExpired(ctx, cutoff)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to load expired projects")
	}
	return projects, nil
}

// --- reports ---

// SaveReport upserts the report by id.
func (s *Store) SaveReport(ctx context.Context, report *models.Report) error {
	if err := s.reports.Upsert(ctx, report); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to save report")
	}
	s.notify(ctx, CollectionReports)
	return nil
}

// DeleteReport removes one report.
func (s *Store) DeleteReport(ctx context.Context, id string) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "failed to delete report")
	}
	s.notify(ctx, CollectionReports)
	return nil
}
