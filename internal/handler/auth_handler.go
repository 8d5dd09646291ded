package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
	"github.com/j1progress/progress-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler wires the login flow to HTTP.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Authenticate as admin or a unit
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login target and password"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid login payload"))
		return
	}
	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}
