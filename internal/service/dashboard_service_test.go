package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
	deletes []string
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.deletes = append(m.deletes, pattern)
	m.entries = map[string][]byte{}
	return nil
}

func dashboardFixture() *fakeReportStore {
	return &fakeReportStore{
		units: []models.Unit{
			{ID: "u1", Name: "กองนโยบายและแผน", ShortName: "กนผ."},
			{ID: "u2", Name: "กองกำลังพล", ShortName: "กกล."},
		},
		projects: []models.Project{
			{ID: "p1", UnitID: "u1", Name: "แผนแม่บท", FiscalYear: "2569"},
			{ID: "p2", UnitID: "u1", Name: "อบรม", FiscalYear: "2569"},
			{ID: "p3", UnitID: "u2", Name: "จัดหา", FiscalYear: "2569"},
		},
		reports: []models.Report{
			{ID: "r1", UnitID: "u1", ProjectID: "p1", ProjectName: "แผนแม่บท", Progress: 50, Timestamp: 100},
			{ID: "r2", UnitID: "u1", ProjectID: "p2", ProjectName: "อบรม", Progress: 100, Timestamp: 100},
		},
	}
}

func TestDashboardViewAggregates(t *testing.T) {
	svc := NewDashboardService(dashboardFixture(), nil, nil, time.Minute, nil)

	view, fromCache, err := svc.View(context.Background(), DashboardFilter{})
	require.NoError(t, err)
	assert.False(t, fromCache)

	assert.Equal(t, []string{"2569"}, view.AvailableYears)
	assert.Equal(t, 3, view.Stats.Total)
	assert.Equal(t, 1, view.Stats.NotStarted)
	assert.Equal(t, 1, view.Stats.InProgress)
	assert.Equal(t, 1, view.Stats.Completed)
	assert.Equal(t, 50, view.Stats.AvgProgress)

	require.Len(t, view.Rows, 3)
	assert.Equal(t, "p2", view.Rows[0].ProjectID, "rows sorted by progress descending")
	assert.Equal(t, 100, view.Rows[0].Progress)
	assert.Equal(t, models.StatusNotStarted, view.Rows[2].Status)
	assert.Equal(t, "กนผ.", view.Rows[0].UnitShortName)
}

func TestDashboardViewUnitFilter(t *testing.T) {
	svc := NewDashboardService(dashboardFixture(), nil, nil, time.Minute, nil)

	view, _, err := svc.View(context.Background(), DashboardFilter{UnitID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Stats.Total)
	assert.Equal(t, 1, view.Stats.NotStarted)
	assert.Empty(t, view.Reports)
}

func TestDashboardViewServedFromCache(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	store := dashboardFixture()
	svc := NewDashboardService(store, cache, nil, time.Minute, nil)

	_, fromCache, err := svc.View(context.Background(), DashboardFilter{})
	require.NoError(t, err)
	assert.False(t, fromCache)

	// Mutate the underlying data; the cached aggregate must win until
	// invalidated.
	store.reports = nil
	view, fromCache, err := svc.View(context.Background(), DashboardFilter{})
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, 50, view.Stats.AvgProgress)

	require.NoError(t, cache.Invalidate(context.Background(), dashboardCachePattern))
	view, fromCache, err = svc.View(context.Background(), DashboardFilter{})
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Zero(t, view.Stats.AvgProgress)
}

func TestDashboardCacheKeyedByFilter(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	svc := NewDashboardService(dashboardFixture(), cache, nil, time.Minute, nil)

	_, _, err := svc.View(context.Background(), DashboardFilter{})
	require.NoError(t, err)
	_, fromCache, err := svc.View(context.Background(), DashboardFilter{UnitID: "u1"})
	require.NoError(t, err)
	assert.False(t, fromCache, "different facets never share a cache entry")
	assert.Len(t, repo.entries, 2)
}
