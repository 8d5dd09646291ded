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

type unitService interface {
	List(ctx context.Context) ([]models.Unit, error)
	Create(ctx context.Context, input service.UnitInput) (*models.Unit, error)
	Update(ctx context.Context, id string, input service.UnitInput) (*models.Unit, error)
	Delete(ctx context.Context, id string) error
}

// UnitHandler wires unit management to HTTP.
type UnitHandler struct {
	service unitService
}

// NewUnitHandler constructs the handler.
func NewUnitHandler(service unitService) *UnitHandler {
	return &UnitHandler{service: service}
}

// List godoc
// @Summary List units
// @Tags Units
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /units [get]
func (h *UnitHandler) List(c *gin.Context) {
	units, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, units)
}

// Create godoc
// @Summary Create a unit
// @Tags Units
// @Accept json
// @Produce json
// @Param payload body service.UnitInput true "Unit fields"
// @Success 201 {object} response.Envelope
// @Router /units [post]
func (h *UnitHandler) Create(c *gin.Context) {
	var input service.UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid unit payload"))
		return
	}
	unit, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, unit)
}

// Update godoc
// @Summary Update a unit
// @Tags Units
// @Accept json
// @Produce json
// @Param id path string true "Unit ID"
// @Param payload body service.UnitInput true "Unit fields"
// @Success 200 {object} response.Envelope
// @Router /units/{id} [put]
func (h *UnitHandler) Update(c *gin.Context) {
	var input service.UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid unit payload"))
		return
	}
	unit, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, unit)
}

// Delete godoc
// @Summary Delete a unit and everything it owns
// @Tags Units
// @Param id path string true "Unit ID"
// @Success 204
// @Router /units/{id} [delete]
func (h *UnitHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
