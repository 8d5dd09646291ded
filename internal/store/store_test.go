package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
)

type fakeUnitRepo struct {
	mu    sync.Mutex
	units map[string]models.Unit
}

func (f *fakeUnitRepo) List(context.Context) ([]models.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Unit, 0, len(f.units))
	for _, u := range f.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUnitRepo) GetByID(_ context.Context, id string) (*models.Unit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.units[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUnitRepo) Upsert(_ context.Context, unit *models.Unit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.units[unit.ID] = *unit
	return nil
}

func (f *fakeUnitRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.units, id)
	return nil
}

type fakeProjectRepo struct {
	projects map[string]models.Project
}

func (f *fakeProjectRepo) List(context.Context) ([]models.Project, error) {
	out := make([]models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProjectRepo) Upsert(_ context.Context, project *models.Project) error {
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) DeleteByUnit(_ context.Context, unitID string) ([]string, error) {
	removed := []string{}
	for id, p := range f.projects {
		if p.UnitID == unitID {
			removed = append(removed, id)
			delete(f.projects, id)
		}
	}
	sort.Strings(removed)
	return removed, nil
}

func (f *fakeProjectRepo) SetDeletedAt(_ context.Context, id string, deletedAt *int64) error {
	p, ok := f.projects[id]
	if !ok {
		return appErrors.ErrNotFound
	}
	p.DeletedAt = deletedAt
	f.projects[id] = p
	return nil
}

func (f *fakeProjectRepo) ClearGroup(_ context.Context, groupID string) error {
	for id, p := range f.projects {
		if p.GroupID != nil && *p.GroupID == groupID {
			p.GroupID = nil
			f.projects[id] = p
		}
	}
	return nil
}

func (f *fakeProjectRepo) ListExpired(_ context.Context, cutoff int64) ([]models.Project, error) {
	out := []models.Project{}
	for _, p := range f.projects {
		if p.DeletedAt != nil && *p.DeletedAt < cutoff {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeGroupRepo struct {
	groups map[string]models.ProjectGroup
}

func (f *fakeGroupRepo) List(context.Context) ([]models.ProjectGroup, error) {
	out := make([]models.ProjectGroup, 0, len(f.groups))
	for _, g := range f.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGroupRepo) Upsert(_ context.Context, group *models.ProjectGroup) error {
	f.groups[group.ID] = *group
	return nil
}

func (f *fakeGroupRepo) Delete(_ context.Context, id string) error {
	delete(f.groups, id)
	return nil
}

type fakeReportRepo struct {
	reports map[string]models.Report
}

func (f *fakeReportRepo) List(context.Context) ([]models.Report, error) {
	out := make([]models.Report, 0, len(f.reports))
	for _, r := range f.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReportRepo) GetByID(_ context.Context, id string) (*models.Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &r, nil
}

func (f *fakeReportRepo) Upsert(_ context.Context, report *models.Report) error {
	f.reports[report.ID] = *report
	return nil
}

func (f *fakeReportRepo) Delete(_ context.Context, id string) error {
	delete(f.reports, id)
	return nil
}

func (f *fakeReportRepo) DeleteByProject(_ context.Context, projectID string) error {
	for id, r := range f.reports {
		if r.ProjectID == projectID {
			delete(f.reports, id)
		}
	}
	return nil
}

func (f *fakeReportRepo) DeleteByUnit(_ context.Context, unitID string) error {
	for id, r := range f.reports {
		if r.UnitID == unitID {
			delete(f.reports, id)
		}
	}
	return nil
}

func (f *fakeReportRepo) SyncProjectFields(_ context.Context, projectID, projectName, unitID string) (int64, error) {
	var affected int64
	for id, r := range f.reports {
		if r.ProjectID == projectID {
			r.ProjectName = projectName
			r.UnitID = unitID
			f.reports[id] = r
			affected++
		}
	}
	return affected, nil
}

func newTestStore() (*Store, *fakeUnitRepo, *fakeProjectRepo, *fakeGroupRepo, *fakeReportRepo) {
	units := &fakeUnitRepo{units: map[string]models.Unit{}}
	projects := &fakeProjectRepo{projects: map[string]models.Project{}}
	groups := &fakeGroupRepo{groups: map[string]models.ProjectGroup{}}
	reports := &fakeReportRepo{reports: map[string]models.Report{}}
	return New(units, projects, groups, reports, nil), units, projects, groups, reports
}

func TestStoreSubscribeDeliversSnapshots(t *testing.T) {
	s, _, _, _, _ := newTestStore()
	ctx := context.Background()

	var snapshots [][]models.Unit
	unsubscribe, err := s.SubscribeUnits(ctx, func(units []models.Unit) {
		snapshots = append(snapshots, units)
	})
	require.NoError(t, err)
	require.Len(t, snapshots, 1, "initial snapshot delivered on subscribe")
	assert.Empty(t, snapshots[0])

	require.NoError(t, s.SaveUnit(ctx, &models.Unit{ID: "u1", Name: "กนผ.สนผพ.กพ.ทหาร", ShortName: "กนผ."}))
	require.Len(t, snapshots, 2)
	require.Len(t, snapshots[1], 1)
	assert.Equal(t, "u1", snapshots[1][0].ID)

	unsubscribe()
	require.NoError(t, s.SaveUnit(ctx, &models.Unit{ID: "u2", Name: "กพบท.กพ.ทหาร", ShortName: "กพบท."}))
	assert.Len(t, snapshots, 2, "no delivery after unsubscribe")
}

func TestStoreConcurrentWritesDeliverMonotonicSnapshots(t *testing.T) {
	s, _, _, _, _ := newTestStore()
	ctx := context.Background()

	var mu sync.Mutex
	var sizes []int
	_, err := s.SubscribeUnits(ctx, func(units []models.Unit) {
		mu.Lock()
		sizes = append(sizes, len(units))
		mu.Unlock()
	})
	require.NoError(t, err)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.SaveUnit(ctx, &models.Unit{ID: fmt.Sprintf("u%02d", i)}))
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sizes, writers+1)
	for i := 1; i < len(sizes); i++ {
		assert.GreaterOrEqual(t, sizes[i], sizes[i-1],
			"snapshot %d went backwards: %v", i, sizes)
	}
	assert.Equal(t, writers, sizes[len(sizes)-1], "final snapshot holds every committed write")
}

func TestStoreSaveProjectSyncsReports(t *testing.T) {
	s, _, projects, _, reports := newTestStore()
	ctx := context.Background()

	previous := models.Project{ID: "p1", UnitID: "u1", Name: "old name", FiscalYear: "2569"}
	projects.projects["p1"] = previous
	reports.reports["r1"] = models.Report{ID: "r1", ProjectID: "p1", UnitID: "u1", ProjectName: "old name", Progress: 10}
	reports.reports["r2"] = models.Report{ID: "r2", ProjectID: "p1", UnitID: "u1", ProjectName: "old name", Progress: 20}
	reports.reports["r3"] = models.Report{ID: "r3", ProjectID: "p2", UnitID: "u1", ProjectName: "other", Progress: 30}

	var reportSnapshots [][]models.Report
	_, err := s.SubscribeReports(ctx, func(r []models.Report) {
		reportSnapshots = append(reportSnapshots, r)
	})
	require.NoError(t, err)

	updated := models.Project{ID: "p1", UnitID: "u2", Name: "new name", FiscalYear: "2569"}
	require.NoError(t, s.SaveProject(ctx, &updated, &previous))

	for _, id := range []string{"r1", "r2"} {
		r := reports.reports[id]
		assert.Equal(t, "new name", r.ProjectName)
		assert.Equal(t, "u2", r.UnitID)
	}
	untouched := reports.reports["r3"]
	assert.Equal(t, "other", untouched.ProjectName)
	assert.Len(t, reportSnapshots, 2, "cascade re-notifies report subscribers")
}

func TestStoreSaveProjectWithoutChangesSkipsSync(t *testing.T) {
	s, _, projects, _, reports := newTestStore()
	ctx := context.Background()

	previous := models.Project{ID: "p1", UnitID: "u1", Name: "same", FiscalYear: "2569"}
	projects.projects["p1"] = previous
	reports.reports["r1"] = models.Report{ID: "r1", ProjectID: "p1", UnitID: "u1", ProjectName: "stale copy"}

	next := previous
	next.FiscalYear = "2570"
	require.NoError(t, s.SaveProject(ctx, &next, &previous))

	assert.Equal(t, "stale copy", reports.reports["r1"].ProjectName, "fiscal year change alone does not touch reports")
}

func TestStoreDeleteUnitCascades(t *testing.T) {
	s, units, projects, _, reports := newTestStore()
	ctx := context.Background()

	units.units["u1"] = models.Unit{ID: "u1"}
	units.units["u2"] = models.Unit{ID: "u2"}
	projects.projects["p1"] = models.Project{ID: "p1", UnitID: "u1"}
	projects.projects["p2"] = models.Project{ID: "p2", UnitID: "u2"}
	reports.reports["r1"] = models.Report{ID: "r1", UnitID: "u1", ProjectID: "p1"}
	reports.reports["r2"] = models.Report{ID: "r2", UnitID: "u2", ProjectID: "p2"}

	require.NoError(t, s.DeleteUnit(ctx, "u1"))

	assert.NotContains(t, units.units, "u1")
	assert.NotContains(t, projects.projects, "p1")
	assert.NotContains(t, reports.reports, "r1")
	assert.Contains(t, units.units, "u2")
	assert.Contains(t, projects.projects, "p2")
	assert.Contains(t, reports.reports, "r2")
}

func TestStoreDeleteGroupUngroupsMembers(t *testing.T) {
	s, _, projects, groups, _ := newTestStore()
	ctx := context.Background()

	groupID := "g1"
	groups.groups["g1"] = models.ProjectGroup{ID: "g1", Name: "นโยบายเร่งด่วน"}
	projects.projects["p1"] = models.Project{ID: "p1", UnitID: "u1", GroupID: &groupID}
	projects.projects["p2"] = models.Project{ID: "p2", UnitID: "u1"}

	require.NoError(t, s.DeleteGroup(ctx, "g1"))

	assert.NotContains(t, groups.groups, "g1")
	assert.Nil(t, projects.projects["p1"].GroupID)
	assert.Contains(t, projects.projects, "p1", "members survive group deletion")
	assert.Contains(t, projects.projects, "p2")
}

func TestStoreSoftDeleteAndRestore(t *testing.T) {
	s, _, projects, _, _ := newTestStore()
	ctx := context.Background()

	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	original := models.Project{ID: "p1", UnitID: "u1", Name: "โครงการ", FiscalYear: "2569"}
	projects.projects["p1"] = original

	require.NoError(t, s.SoftDeleteProject(ctx, "p1"))
	trashed := projects.projects["p1"]
	require.NotNil(t, trashed.DeletedAt)
	assert.Equal(t, now.UnixMilli(), *trashed.DeletedAt)

	require.NoError(t, s.RestoreProject(ctx, "p1"))
	restored := projects.projects["p1"]
	assert.Nil(t, restored.DeletedAt)
	assert.Equal(t, original, restored, "restore is lossless")
}

func TestStoreDeleteProjectCascadesReports(t *testing.T) {
	s, _, projects, _, reports := newTestStore()
	ctx := context.Background()

	projects.projects["p1"] = models.Project{ID: "p1", UnitID: "u1"}
	reports.reports["r1"] = models.Report{ID: "r1", ProjectID: "p1", UnitID: "u1"}
	reports.reports["r2"] = models.Report{ID: "r2", ProjectID: "p2", UnitID: "u1"}

	require.NoError(t, s.DeleteProject(ctx, "p1"))

	assert.NotContains(t, projects.projects, "p1")
	assert.NotContains(t, reports.reports, "r1")
	assert.Contains(t, reports.reports, "r2")
}
