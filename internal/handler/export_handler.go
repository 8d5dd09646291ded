package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/j1progress/progress-api/internal/service"
	"github.com/j1progress/progress-api/pkg/response"
)

type exportService interface {
	Reports(ctx context.Context, filter service.ReportFilter, format service.ExportFormat) (*service.ExportedFile, error)
}

// ExportHandler streams rendered report tables.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Reports godoc
// @Summary Export the filtered report list as CSV or PDF
// @Tags Export
// @Produce octet-stream
// @Param format query string true "csv or pdf"
// @Param unitId query string false "Filter by unit"
// @Param projectId query string false "Filter by project"
// @Param year query string false "Filter by fiscal year"
// @Param dateStart query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param dateEnd query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param q query string false "Search text"
// @Success 200 {file} binary
// @Router /export/reports [get]
func (h *ExportHandler) Reports(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	if format == "" {
		format = service.FormatCSV
	}
	file, err := h.service.Reports(c.Request.Context(), reportFilterFromQuery(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
