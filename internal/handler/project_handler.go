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

type projectService interface {
	List(ctx context.Context, filter service.ProjectFilter) ([]models.Project, error)
	ListTrash(ctx context.Context) ([]models.Project, error)
	Create(ctx context.Context, input service.ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id string, input service.ProjectInput) (*models.Project, error)
	Trash(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ProjectHandler wires project management, including the trash lifecycle,
// to HTTP.
type ProjectHandler struct {
	service projectService
}

// NewProjectHandler constructs the handler.
func NewProjectHandler(service projectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List godoc
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param unitId query string false "Filter by owning unit"
// @Param year query string false "Filter by fiscal year"
// @Param groupId query string false "Filter by group"
// @Param q query string false "Search text"
// @Param includeDeleted query bool false "Include trashed projects"
// @Success 200 {object} response.Envelope
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	filter := service.ProjectFilter{
		UnitID:         strings.TrimSpace(c.Query("unitId")),
		FiscalYear:     strings.TrimSpace(c.Query("year")),
		GroupID:        strings.TrimSpace(c.Query("groupId")),
		Search:         strings.TrimSpace(c.Query("q")),
		IncludeDeleted: c.Query("includeDeleted") == "true",
	}
	projects, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projects)
}

// ListTrash godoc
// @Summary List trashed projects
// @Tags Projects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /projects/trash [get]
func (h *ProjectHandler) ListTrash(c *gin.Context) {
	projects, err := h.service.ListTrash(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, projects)
}

// Create godoc
// @Summary Create a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param payload body service.ProjectInput true "Project fields"
// @Success 201 {object} response.Envelope
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var input service.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid project payload"))
		return
	}
	project, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// Update godoc
// @Summary Update a project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param payload body service.ProjectInput true "Project fields"
// @Success 200 {object} response.Envelope
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	var input service.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid project payload"))
		return
	}
	project, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project)
}

// Trash godoc
// @Summary Move a project to the trash
// @Tags Projects
// @Param id path string true "Project ID"
// @Success 204
// @Router /projects/{id}/trash [post]
func (h *ProjectHandler) Trash(c *gin.Context) {
	if err := h.service.Trash(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Restore godoc
// @Summary Restore a project from the trash
// @Tags Projects
// @Param id path string true "Project ID"
// @Success 204
// @Router /projects/{id}/restore [post]
func (h *ProjectHandler) Restore(c *gin.Context) {
	if err := h.service.Restore(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Permanently delete a project and its reports
// @Tags Projects
// @Param id path string true "Project ID"
// @Success 204
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
