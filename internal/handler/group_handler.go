package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j1progress/progress-api/internal/models"
	"github.com/j1progress/progress-api/internal/service"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
	"github.com/j1progress/progress-api/pkg/response"
)

type groupService interface {
	List(ctx context.Context) ([]models.ProjectGroup, error)
	Create(ctx context.Context, input service.GroupInput) (*models.ProjectGroup, error)
	Update(ctx context.Context, id string, input service.GroupInput) (*models.ProjectGroup, error)
	Delete(ctx context.Context, id string) error
}

// GroupHandler wires project-group management to HTTP.
type GroupHandler struct {
	service groupService
}

// NewGroupHandler constructs the handler.
func NewGroupHandler(service groupService) *GroupHandler {
	return &GroupHandler{service: service}
}

// List godoc
// @Summary List project groups
// @Tags Groups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// Create godoc
// @Summary Create a project group
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body service.GroupInput true "Group fields"
// @Success 201 {object} response.Envelope
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	var input service.GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid group payload"))
		return
	}
	group, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// Update godoc
// @Summary Rename a project group
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param payload body service.GroupInput true "Group fields"
// @Success 200 {object} response.Envelope
// @Router /groups/{id} [put]
func (h *GroupHandler) Update(c *gin.Context) {
	var input service.GroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid group payload"))
		return
	}
	group, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, group)
}

// Delete godoc
// @Summary Delete a project group, ungrouping its members
// @Tags Groups
// @Param id path string true "Group ID"
// @Success 204
// @Router /groups/{id} [delete]
func (h *GroupHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
