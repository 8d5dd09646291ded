package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/j1progress/progress-api/internal/service"
	"github.com/j1progress/progress-api/pkg/response"
)

type dashboardService interface {
	View(ctx context.Context, filter service.DashboardFilter) (*service.DashboardView, bool, error)
}

// DashboardHandler wires the aggregate dashboard view to HTTP.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func dashboardFilterFromQuery(c *gin.Context) service.DashboardFilter {
	return service.DashboardFilter{
		UnitID:     strings.TrimSpace(c.Query("unitId")),
		ProjectID:  strings.TrimSpace(c.Query("projectId")),
		FiscalYear: strings.TrimSpace(c.Query("year")),
		GroupID:    strings.TrimSpace(c.Query("groupId")),
		DateStart:  strings.TrimSpace(c.Query("dateStart")),
		DateEnd:    strings.TrimSpace(c.Query("dateEnd")),
		Search:     strings.TrimSpace(c.Query("q")),
	}
}

// View godoc
// @Summary Aggregated progress dashboard
// @Tags Dashboard
// @Produce json
// @Param unitId query string false "Filter by unit"
// @Param projectId query string false "Filter by project"
// @Param year query string false "Filter by fiscal year"
// @Param groupId query string false "Filter by group"
// @Param dateStart query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param dateEnd query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param q query string false "Search text"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) View(c *gin.Context) {
	start := time.Now()
	view, cacheHit, err := h.service.View(c.Request.Context(), dashboardFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, view, meta)
}
