package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j1progress/progress-api/internal/models"
)

func strptr(s string) *string { return &s }

func int64ptr(v int64) *int64 { return &v }

func TestAvailableYearsDefaultsWhenEmpty(t *testing.T) {
	assert.Equal(t, []string{"2569"}, AvailableYears(nil))

	trashed := []models.Project{
		{ID: "p1", FiscalYear: "2568", DeletedAt: int64ptr(1700000000000)},
	}
	assert.Equal(t, []string{"2569"}, AvailableYears(trashed), "trashed projects do not contribute years")
}

func TestAvailableYearsSortedDescendingWithDefault(t *testing.T) {
	projects := []models.Project{
		{ID: "p1", FiscalYear: "2568"},
		{ID: "p2", FiscalYear: "2570"},
		{ID: "p3"}, // legacy record, counts as the default year
		{ID: "p4", FiscalYear: "2570"},
	}
	assert.Equal(t, []string{"2570", "2569", "2568"}, AvailableYears(projects))
}

func TestLatestReportPerProject(t *testing.T) {
	projects := []models.Project{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}
	reports := []models.Report{
		{ID: "r1", ProjectID: "p1", Timestamp: 100},
		{ID: "r2", ProjectID: "p1", Timestamp: 300},
		{ID: "r3", ProjectID: "p1", Timestamp: 200},
		{ID: "r4", ProjectID: "p2", Timestamp: 50},
		{ID: "r5", ProjectID: "other", Timestamp: 999},
	}

	latest := LatestReportPerProject(projects, reports)

	require.Len(t, latest, 2)
	assert.Equal(t, "r2", latest["p1"].ID)
	assert.Equal(t, "r4", latest["p2"].ID)
	_, ok := latest["p3"]
	assert.False(t, ok, "project without reports has no entry")
}

func TestLatestReportTieBreaksOnLargerID(t *testing.T) {
	projects := []models.Project{{ID: "p1"}}
	reports := []models.Report{
		{ID: "r9", ProjectID: "p1", Timestamp: 100},
		{ID: "r2", ProjectID: "p1", Timestamp: 100},
	}

	latest := LatestReportPerProject(projects, reports)
	assert.Equal(t, "r9", latest["p1"].ID)

	// Order of the input slice must not change the winner.
	latest = LatestReportPerProject(projects, []models.Report{reports[1], reports[0]})
	assert.Equal(t, "r9", latest["p1"].ID)
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, models.StatusNotStarted, ClassifyStatus(nil))
	assert.Equal(t, models.StatusNotStarted, ClassifyStatus(&models.Report{Progress: 0}))
	assert.Equal(t, models.StatusInProgress, ClassifyStatus(&models.Report{Progress: 1}))
	assert.Equal(t, models.StatusInProgress, ClassifyStatus(&models.Report{Progress: 99}))
	assert.Equal(t, models.StatusCompleted, ClassifyStatus(&models.Report{Progress: 100}))
}

func TestAggregateStatsAveragesOverAllTargets(t *testing.T) {
	projects := []models.Project{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}
	latest := map[string]models.Report{
		"p1": {ID: "r1", ProjectID: "p1", Progress: 50},
		"p2": {ID: "r2", ProjectID: "p2", Progress: 100},
	}

	stats := AggregateStats(projects, latest)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.NotStarted)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Completed)
	// (50+100)/3: the unreported project still sits in the denominator.
	assert.Equal(t, 50, stats.AvgProgress)
}

func TestAggregateStatsEmpty(t *testing.T) {
	stats := AggregateStats(nil, nil)
	assert.Equal(t, ProjectStats{}, stats)
}

func TestFilterReportsByFacets(t *testing.T) {
	units := []models.Unit{
		{ID: "u1", Name: "กองนโยบายและแผน", ShortName: "กนผ."},
		{ID: "u2", Name: "กองกำลังพล", ShortName: "กกล."},
	}
	projects := []models.Project{
		{ID: "p1", UnitID: "u1", FiscalYear: "2569"},
		{ID: "p2", UnitID: "u2", FiscalYear: "2568"},
	}
	reports := []models.Report{
		{ID: "r1", UnitID: "u1", ProjectID: "p1", ProjectName: "แผนแม่บท", ReportDateStart: "2026-01-01", ReportDateEnd: "2026-01-15"},
		{ID: "r2", UnitID: "u2", ProjectID: "p2", ProjectName: "อบรมบุคลากร", ReportDateStart: "2026-02-01", ReportDateEnd: "2026-02-15"},
		{ID: "r3", UnitID: "u1", ProjectID: "p1", ProjectName: "แผนแม่บท", ReportDateStart: "2026-03-01", ReportDateEnd: "2026-03-15"},
	}

	byUnit := FilterReports(reports, units, projects, ReportFilter{UnitID: "u1"})
	require.Len(t, byUnit, 2)

	byYear := FilterReports(reports, units, projects, ReportFilter{FiscalYear: "2568"})
	require.Len(t, byYear, 1)
	assert.Equal(t, "r2", byYear[0].ID)

	combined := FilterReports(reports, units, projects, ReportFilter{UnitID: "u1", FiscalYear: "2568"})
	assert.Empty(t, combined, "facets AND together")
}

func TestFilterReportsDateRangeInclusive(t *testing.T) {
	reports := []models.Report{
		{ID: "r1", ReportDateStart: "2026-01-10", ReportDateEnd: "2026-01-10"},
		{ID: "r2", ReportDateStart: "2026-01-10", ReportDateEnd: "2026-01-20"},
		{ID: "r3", ReportDateStart: "2026-02-01", ReportDateEnd: "2026-02-10"},
	}

	got := FilterReports(reports, nil, nil, ReportFilter{DateStart: "2026-01-10", DateEnd: "2026-01-20"})
	require.Len(t, got, 2, "boundary dates are inclusive on both ends")
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r2", got[1].ID)
}

func TestFilterReportsExcludesWindowsStraddlingBounds(t *testing.T) {
	reports := []models.Report{
		{ID: "r1", ReportDateStart: "2026-01-01", ReportDateEnd: "2026-01-15"},
		{ID: "r2", ReportDateStart: "2026-01-12", ReportDateEnd: "2026-01-20"},
		{ID: "r3", ReportDateStart: "2026-01-25", ReportDateEnd: "2026-02-05"},
	}

	// Each bound applies to its own field, so a window that starts before
	// DateStart or ends after DateEnd is out even when it overlaps the range.
	got := FilterReports(reports, nil, nil, ReportFilter{DateStart: "2026-01-10", DateEnd: "2026-01-31"})
	require.Len(t, got, 1)
	assert.Equal(t, "r2", got[0].ID)

	onlyStart := FilterReports(reports, nil, nil, ReportFilter{DateStart: "2026-01-10"})
	require.Len(t, onlyStart, 2)
	assert.Equal(t, "r2", onlyStart[0].ID)
	assert.Equal(t, "r3", onlyStart[1].ID)

	onlyEnd := FilterReports(reports, nil, nil, ReportFilter{DateEnd: "2026-01-20"})
	require.Len(t, onlyEnd, 2)
	assert.Equal(t, "r1", onlyEnd[0].ID)
	assert.Equal(t, "r2", onlyEnd[1].ID)
}

func TestFilterReportsSearchAcrossFields(t *testing.T) {
	units := []models.Unit{{ID: "u1", Name: "Planning Division", ShortName: "PLAN"}}
	reports := []models.Report{
		{ID: "r1", UnitID: "u1", ProjectName: "Digital Transformation"},
		{ID: "r2", UnitID: "u1", ProjectName: "อื่น ๆ", Obstacles: "budget delayed"},
		{ID: "r3", UnitID: "missing", ProjectName: "Unrelated"},
	}

	assert.Len(t, FilterReports(reports, units, nil, ReportFilter{Search: "digital"}), 1)
	assert.Len(t, FilterReports(reports, units, nil, ReportFilter{Search: "BUDGET"}), 1)
	// Unit-name search matches every report of that unit.
	assert.Len(t, FilterReports(reports, units, nil, ReportFilter{Search: "plan"}), 2)
	// Dangling unitId cannot match on unit name but the report itself survives other filters.
	assert.Len(t, FilterReports(reports, units, nil, ReportFilter{Search: "unrelated"}), 1)
}

func TestFilterProjects(t *testing.T) {
	units := []models.Unit{{ID: "u1", Name: "กองนโยบายและแผน", ShortName: "กนผ."}}
	projects := []models.Project{
		{ID: "p1", UnitID: "u1", Name: "แผนแม่บท", FiscalYear: "2569", GroupID: strptr("g1")},
		{ID: "p2", UnitID: "u1", Name: "อบรม", FiscalYear: "2568"},
		{ID: "p3", UnitID: "u2", Name: "ถูกลบ", FiscalYear: "2569", DeletedAt: int64ptr(1700000000000)},
	}

	active := FilterProjects(projects, units, ProjectFilter{})
	require.Len(t, active, 2, "trash excluded by default")

	withTrash := FilterProjects(projects, units, ProjectFilter{IncludeDeleted: true})
	assert.Len(t, withTrash, 3)

	grouped := FilterProjects(projects, units, ProjectFilter{GroupID: "g1"})
	require.Len(t, grouped, 1)
	assert.Equal(t, "p1", grouped[0].ID)

	byShortName := FilterProjects(projects, units, ProjectFilter{Search: "กนผ"})
	assert.Len(t, byShortName, 2)
}
