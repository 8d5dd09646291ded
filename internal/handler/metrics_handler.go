package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j1progress/progress-api/internal/service"
	"github.com/j1progress/progress-api/pkg/response"
)

// MetricsHandler exposes the Prometheus scrape endpoint and a JSON snapshot
// of the aggregated runtime counters.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs the handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Prometheus serves the scrape endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Snapshot godoc
// @Summary Runtime counters for the admin console
// @Tags System
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /system/metrics [get]
func (h *MetricsHandler) Snapshot(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot())
}
