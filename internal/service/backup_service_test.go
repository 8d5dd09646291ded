package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
)

type fakeBackupStore struct {
	units    map[string]models.Unit
	projects map[string]models.Project
	groups   map[string]models.ProjectGroup
	reports  map[string]models.Report
}

func newFakeBackupStore() *fakeBackupStore {
	return &fakeBackupStore{
		units:    map[string]models.Unit{},
		projects: map[string]models.Project{},
		groups:   map[string]models.ProjectGroup{},
		reports:  map[string]models.Report{},
	}
}

func (f *fakeBackupStore) ListUnits(context.Context) ([]models.Unit, error) {
	out := []models.Unit{}
	for _, u := range f.units {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeBackupStore) ListProjects(context.Context) ([]models.Project, error) {
	out := []models.Project{}
	for _, p := range f.projects {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeBackupStore) ListGroups(context.Context) ([]models.ProjectGroup, error) {
	out := []models.ProjectGroup{}
	for _, g := range f.groups {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeBackupStore) ListReports(context.Context) ([]models.Report, error) {
	out := []models.Report{}
	for _, r := range f.reports {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeBackupStore) SaveUnit(_ context.Context, unit *models.Unit) error {
	f.units[unit.ID] = *unit
	return nil
}

func (f *fakeBackupStore) SaveProject(_ context.Context, project *models.Project, _ *models.Project) error {
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeBackupStore) SaveGroup(_ context.Context, group *models.ProjectGroup) error {
	f.groups[group.ID] = *group
	return nil
}

func (f *fakeBackupStore) SaveReport(_ context.Context, report *models.Report) error {
	f.reports[report.ID] = *report
	return nil
}

func TestBackupExportImportRoundTrip(t *testing.T) {
	source := newFakeBackupStore()
	source.units["u1"] = models.Unit{ID: "u1", Name: "กนผ.", Password: "secret"}
	source.groups["g1"] = models.ProjectGroup{ID: "g1", Name: "เร่งด่วน"}
	deletedAt := int64(1700000000000)
	source.projects["p1"] = models.Project{ID: "p1", UnitID: "u1", Name: "โครงการ", FiscalYear: "2569"}
	source.projects["p2"] = models.Project{ID: "p2", UnitID: "u1", Name: "ในถังขยะ", DeletedAt: &deletedAt}
	source.reports["r1"] = models.Report{ID: "r1", UnitID: "u1", ProjectID: "p1", ProjectName: "โครงการ", Progress: 40, Timestamp: 1700000000001}

	svc := NewBackupService(source, nil, nil, nil)
	backup, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.BackupVersion, backup.Version)
	assert.NotZero(t, backup.Timestamp)

	raw, err := json.Marshal(backup)
	require.NoError(t, err)

	target := newFakeBackupStore()
	targetSvc := NewBackupService(target, nil, nil, nil)
	result, err := targetSvc.Import(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Units: 1, Projects: 2, Groups: 1, Reports: 1}, result)

	assert.Equal(t, source.units, target.units)
	assert.Equal(t, source.projects, target.projects, "trash markers survive the round trip")
	assert.Equal(t, source.groups, target.groups)
	assert.Equal(t, source.reports, target.reports)
}

func TestBackupImportRejectsMissingCollections(t *testing.T) {
	target := newFakeBackupStore()
	svc := NewBackupService(target, nil, nil, nil)

	cases := []string{
		`{"projects":[],"units":[]}`,
		`{"reports":[],"units":[]}`,
		`{"reports":[],"projects":[]}`,
		`{}`,
	}
	for _, raw := range cases {
		_, err := svc.Import(context.Background(), []byte(raw))
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrImportFormat.Code, appErrors.FromError(err).Code)
	}
	assert.Empty(t, target.units, "nothing written on rejection")
}

func TestBackupImportRejectsMalformedJSON(t *testing.T) {
	svc := NewBackupService(newFakeBackupStore(), nil, nil, nil)

	_, err := svc.Import(context.Background(), []byte(`not json`))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrImportFormat.Code, appErrors.FromError(err).Code)
}

func TestBackupImportGroupsOptional(t *testing.T) {
	target := newFakeBackupStore()
	svc := NewBackupService(target, nil, nil, nil)

	raw := `{"reports":[],"projects":[],"units":[{"id":"u1","name":"กนผ.","shortName":"กนผ."}],"timestamp":1,"version":"2.0 (Local)"}`
	result, err := svc.Import(context.Background(), []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Units)
	assert.Zero(t, result.Groups)
}

func TestBackupImportOverwritesExistingRecords(t *testing.T) {
	target := newFakeBackupStore()
	target.units["u1"] = models.Unit{ID: "u1", Name: "old"}
	svc := NewBackupService(target, nil, nil, nil)

	raw := `{"reports":[],"projects":[],"units":[{"id":"u1","name":"new","shortName":"n."}]}`
	_, err := svc.Import(context.Background(), []byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "new", target.units["u1"].Name)
}
