package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/j1progress/progress-api/internal/models"
	"github.com/j1progress/progress-api/internal/service"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
	"github.com/j1progress/progress-api/pkg/response"
)

type reportService interface {
	List(ctx context.Context, filter service.ReportFilter) ([]models.Report, error)
	Submit(ctx context.Context, claims *models.JWTClaims, input service.ReportInput) (*models.Report, error)
	Delete(ctx context.Context, claims *models.JWTClaims, id string) error
	Prefill(ctx context.Context, projectID string) (*models.Report, error)
}

// ReportHandler wires report submission and retrieval to HTTP.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func reportFilterFromQuery(c *gin.Context) service.ReportFilter {
	return service.ReportFilter{
		UnitID:     strings.TrimSpace(c.Query("unitId")),
		ProjectID:  strings.TrimSpace(c.Query("projectId")),
		FiscalYear: strings.TrimSpace(c.Query("year")),
		DateStart:  strings.TrimSpace(c.Query("dateStart")),
		DateEnd:    strings.TrimSpace(c.Query("dateEnd")),
		Search:     strings.TrimSpace(c.Query("q")),
	}
}

// List godoc
// @Summary List reports
// @Tags Reports
// @Produce json
// @Param unitId query string false "Filter by unit"
// @Param projectId query string false "Filter by project"
// @Param year query string false "Filter by fiscal year"
// @Param dateStart query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param dateEnd query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param q query string false "Search text"
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), reportFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports)
}

// Create godoc
// @Summary Submit a progress report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body service.ReportInput true "Report fields"
// @Success 201 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var input service.ReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report payload"))
		return
	}
	report, err := h.service.Submit(c.Request.Context(), claimsFromContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// Delete godoc
// @Summary Delete a report
// @Tags Reports
// @Param id path string true "Report ID"
// @Success 204
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Prefill godoc
// @Summary Latest prior report for a project, for entry-form prefill
// @Tags Reports
// @Produce json
// @Param projectId query string true "Project ID"
// @Success 200 {object} response.Envelope
// @Router /reports/prefill [get]
func (h *ReportHandler) Prefill(c *gin.Context) {
	report, err := h.service.Prefill(c.Request.Context(), strings.TrimSpace(c.Query("projectId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
