package service

import (
	"math"
	"sort"
	"strings"

	"github.com/j1progress/progress-api/internal/models"
)

// ReportFilter narrows a report snapshot. Zero values mean "no constraint";
// all active facets combine with AND. Date bounds compare the report's own
// date strings (YYYY-MM-DD) inclusively.
type ReportFilter struct {
	UnitID     string
	ProjectID  string
	FiscalYear string
	DateStart  string
	DateEnd    string
	Search     string
}

// ProjectFilter narrows a project snapshot the same way.
type ProjectFilter struct {
	UnitID         string
	FiscalYear     string
	GroupID        string
	Search         string
	IncludeDeleted bool
}

// ProjectStats is the per-status breakdown over a target project set.
type ProjectStats struct {
	Total       int `json:"total"`
	NotStarted  int `json:"notStarted"`
	InProgress  int `json:"inProgress"`
	Completed   int `json:"completed"`
	AvgProgress int `json:"avgProgress"`
}

// AvailableYears returns the distinct fiscal years carried by active
// projects, sorted descending. An empty active set yields the current
// default year so year pickers never render empty.
func AvailableYears(projects []models.Project) []string {
	seen := map[string]struct{}{}
	for _, p := range projects {
		if !p.Active() {
			continue
		}
		seen[p.FiscalYearOrDefault()] = struct{}{}
	}
	if len(seen) == 0 {
		return []string{models.DefaultFiscalYear}
	}
	years := make([]string, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// LatestReportPerProject maps each target project id to its most recent
// report, or no entry when the project has none. Recency is the submission
// timestamp; equal timestamps resolve to the larger report id so the winner
// is stable across snapshots.
func LatestReportPerProject(projects []models.Project, reports []models.Report) map[string]models.Report {
	targets := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		targets[p.ID] = struct{}{}
	}
	latest := make(map[string]models.Report)
	for _, r := range reports {
		if _, ok := targets[r.ProjectID]; !ok {
			continue
		}
		current, ok := latest[r.ProjectID]
		if !ok || r.Timestamp > current.Timestamp ||
			(r.Timestamp == current.Timestamp && r.ID > current.ID) {
			latest[r.ProjectID] = r
		}
	}
	return latest
}

// ClassifyStatus buckets a project by its latest report. A missing report
// counts as not started.
func ClassifyStatus(latest *models.Report) models.ProjectStatus {
	switch {
	case latest == nil || latest.Progress == 0:
		return models.StatusNotStarted
	case latest.Progress >= 100:
		return models.StatusCompleted
	default:
		return models.StatusInProgress
	}
}

// AggregateStats counts status buckets over the target projects and computes
// the average progress. The average sums contributions only from projects
// that have a report but divides by the full target count; this matches the
// dashboard's historical figures and is kept intentionally.
func AggregateStats(projects []models.Project, latestByProject map[string]models.Report) ProjectStats {
	stats := ProjectStats{Total: len(projects)}
	sum := 0
	for _, p := range projects {
		var latest *models.Report
		if r, ok := latestByProject[p.ID]; ok {
			latest = &r
			sum += r.Progress
		}
		switch ClassifyStatus(latest) {
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusInProgress:
			stats.InProgress++
		default:
			stats.NotStarted++
		}
	}
	if stats.Total > 0 {
		stats.AvgProgress = int(math.Round(float64(sum) / float64(stats.Total)))
	}
	return stats
}

// FilterReports applies the filter over a report snapshot. The unit slice
// supplies names for the text search; a dangling unitId simply cannot match
// on unit name and is otherwise kept.
func FilterReports(reports []models.Report, units []models.Unit, projects []models.Project, f ReportFilter) []models.Report {
	unitsByID := make(map[string]models.Unit, len(units))
	for _, u := range units {
		unitsByID[u.ID] = u
	}
	yearByProject := make(map[string]string, len(projects))
	for _, p := range projects {
		yearByProject[p.ID] = p.FiscalYearOrDefault()
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Report, 0, len(reports))
	for _, r := range reports {
		if f.UnitID != "" && r.UnitID != f.UnitID {
			continue
		}
		if f.ProjectID != "" && r.ProjectID != f.ProjectID {
			continue
		}
		if f.FiscalYear != "" {
			year, ok := yearByProject[r.ProjectID]
			if !ok || year != f.FiscalYear {
				continue
			}
		}
		// YYYY-MM-DD strings order lexicographically, so plain string
		// comparison gives inclusive date bounds. Each bound checks its
		// own field: the report window must start on or after DateStart
		// and end on or before DateEnd. A report straddling a bound is
		// excluded.
		if f.DateStart != "" && r.ReportDateStart < f.DateStart {
			continue
		}
		if f.DateEnd != "" && r.ReportDateEnd > f.DateEnd {
			continue
		}
		if needle != "" && !reportMatches(r, unitsByID[r.UnitID], needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func reportMatches(r models.Report, u models.Unit, needle string) bool {
	for _, field := range []string{
		r.ProjectName, u.Name, u.ShortName,
		r.PastPerformance, r.NextPlan, r.Obstacles, r.Remarks,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FilterProjects applies the filter over a project snapshot. Soft-deleted
// projects are excluded unless IncludeDeleted is set (the trash view).
func FilterProjects(projects []models.Project, units []models.Unit, f ProjectFilter) []models.Project {
	unitsByID := make(map[string]models.Unit, len(units))
	for _, u := range units {
		unitsByID[u.ID] = u
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if !f.IncludeDeleted && !p.Active() {
			continue
		}
		if f.UnitID != "" && p.UnitID != f.UnitID {
			continue
		}
		if f.FiscalYear != "" && p.FiscalYearOrDefault() != f.FiscalYear {
			continue
		}
		if f.GroupID != "" && (p.GroupID == nil || *p.GroupID != f.GroupID) {
			continue
		}
		if needle != "" {
			u := unitsByID[p.UnitID]
			if !strings.Contains(strings.ToLower(p.Name), needle) &&
				!strings.Contains(strings.ToLower(u.Name), needle) &&
				!strings.Contains(strings.ToLower(u.ShortName), needle) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
