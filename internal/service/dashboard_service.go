package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/j1progress/progress-api/internal/models"
)

// dashboardCachePattern matches every cached dashboard view; mutating
// services invalidate against it so stale aggregates never outlive a write.
const dashboardCachePattern = "dashboard:*"

type dashboardStore interface {
	ListUnits(ctx context.Context) ([]models.Unit, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListReports(ctx context.Context) ([]models.Report, error)
}

// ProjectProgressRow is one bar of the per-project progress chart.
type ProjectProgressRow struct {
	ProjectID     string               `json:"projectId"`
	ProjectName   string               `json:"projectName"`
	UnitShortName string               `json:"unitShortName"`
	Progress      int                  `json:"progress"`
	Status        models.ProjectStatus `json:"status"`
	LastReported  int64                `json:"lastReported,omitempty"`
}

// DashboardView is the aggregate served to the admin console.
type DashboardView struct {
	AvailableYears []string                 `json:"availableYears"`
	Stats          ProjectStats             `json:"stats"`
	Projects       []models.Project         `json:"projects"`
	Reports        []models.Report          `json:"reports"`
	Latest         map[string]models.Report `json:"latestByProject"`
	Rows           []ProjectProgressRow     `json:"rows"`
	GeneratedAt    time.Time                `json:"generatedAt"`
}

// DashboardFilter carries every facet the dashboard view accepts.
type DashboardFilter struct {
	UnitID     string
	ProjectID  string
	FiscalYear string
	GroupID    string
	DateStart  string
	DateEnd    string
	Search     string
}

// DashboardService derives the aggregate view from the raw collections,
// with a cache in front keyed on the filter facets.
type DashboardService struct {
	store   dashboardStore
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(store dashboardStore, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: store, cache: cache, metrics: metrics, logger: logger, ttl: ttl}
}

// View computes (or serves from cache) the dashboard aggregate for the
// filter. The boolean reports whether the payload came from cache.
func (s *DashboardService) View(ctx context.Context, filter DashboardFilter) (*DashboardView, bool, error) {
	cacheKey := dashboardCacheKey(filter)
	var cached DashboardView
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	start := time.Now()
	units, err := s.store.ListUnits(ctx)
	if err != nil {
		return nil, false, err
	}
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, false, err
	}
	reports, err := s.store.ListReports(ctx)
	if err != nil {
		return nil, false, err
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("dashboard_snapshot", time.Since(start))
	}

	view := buildDashboardView(units, projects, reports, filter)
	if err := s.cache.Set(ctx, cacheKey, view, s.ttl); err != nil {
		s.logger.Warn("cache dashboard view", zap.Error(err))
	}
	return view, false, nil
}

func buildDashboardView(units []models.Unit, projects []models.Project, reports []models.Report, filter DashboardFilter) *DashboardView {
	targetProjects := FilterProjects(projects, units, ProjectFilter{
		UnitID:     filter.UnitID,
		FiscalYear: filter.FiscalYear,
		GroupID:    filter.GroupID,
		Search:     filter.Search,
	})
	if filter.ProjectID != "" {
		narrowed := targetProjects[:0]
		for _, p := range targetProjects {
			if p.ID == filter.ProjectID {
				narrowed = append(narrowed, p)
			}
		}
		targetProjects = narrowed
	}

	filteredReports := FilterReports(reports, units, projects, ReportFilter{
		UnitID:     filter.UnitID,
		ProjectID:  filter.ProjectID,
		FiscalYear: filter.FiscalYear,
		DateStart:  filter.DateStart,
		DateEnd:    filter.DateEnd,
		Search:     filter.Search,
	})

	latest := LatestReportPerProject(targetProjects, filteredReports)
	stats := AggregateStats(targetProjects, latest)

	unitsByID := make(map[string]models.Unit, len(units))
	for _, u := range units {
		unitsByID[u.ID] = u
	}
	rows := make([]ProjectProgressRow, 0, len(targetProjects))
	for _, p := range targetProjects {
		row := ProjectProgressRow{
			ProjectID:     p.ID,
			ProjectName:   p.Name,
			UnitShortName: unitShortLabel(unitsByID, p.UnitID),
		}
		if r, ok := latest[p.ID]; ok {
			row.Progress = r.Progress
			row.LastReported = r.Timestamp
			row.Status = ClassifyStatus(&r)
		} else {
			row.Status = ClassifyStatus(nil)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Progress > rows[j].Progress })

	return &DashboardView{
		AvailableYears: AvailableYears(projects),
		Stats:          stats,
		Projects:       targetProjects,
		Reports:        filteredReports,
		Latest:         latest,
		Rows:           rows,
		GeneratedAt:    time.Now().UTC(),
	}
}

// unitShortLabel tolerates reports or projects pointing at a unit that no
// longer exists and falls back to the raw id.
func unitShortLabel(unitsByID map[string]models.Unit, unitID string) string {
	if u, ok := unitsByID[unitID]; ok && u.ShortName != "" {
		return u.ShortName
	}
	return unitID
}

func dashboardCacheKey(f DashboardFilter) string {
	return fmt.Sprintf("dashboard:%s:%s:%s:%s:%s:%s:%s",
		f.UnitID, f.ProjectID, f.FiscalYear, f.GroupID, f.DateStart, f.DateEnd, f.Search)
}
