package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j1progress/progress-api/internal/service"
	"github.com/j1progress/progress-api/pkg/response"
)

type summaryService interface {
	Generate(ctx context.Context, filter service.DashboardFilter) (*service.SummaryResult, error)
}

// SummaryHandler wires AI summary generation to HTTP.
type SummaryHandler struct {
	service summaryService
}

// NewSummaryHandler constructs the handler.
func NewSummaryHandler(service summaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Generate godoc
// @Summary Generate an executive summary of current progress
// @Tags Summary
// @Produce json
// @Param unitId query string false "Filter by unit"
// @Param year query string false "Filter by fiscal year"
// @Success 200 {object} response.Envelope
// @Router /summary [post]
func (h *SummaryHandler) Generate(c *gin.Context) {
	result, err := h.service.Generate(c.Request.Context(), dashboardFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
