package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"xclone/internal/metrics"
	"xclone/internal/service"
)

// UserHandler serves user profile lookups.
type UserHandler struct {
	svc     service.UserService
	logger  *zap.Logger
	metrics *metrics.Auth
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, logger *zap.Logger, m *metrics.Auth) *UserHandler {
	return &UserHandler{svc: svc, logger: logger, metrics: m}
}

// GetProfile godoc
// @Summary Get user profile by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /users/profile/{username} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.svc.GetProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, h.logger, h.metrics, "profile", err)
	}
	h.metrics.Observe("profile", http.StatusOK)
	return c.JSON(http.StatusOK, user)
}
