package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"xclone/internal/auth"
	apperrors "xclone/internal/errors"
	"xclone/internal/metrics"
	"xclone/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	sessions    *auth.Sessions
	logger      *zap.Logger
	metrics     *metrics.Auth
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	authService service.AuthService,
	userService service.UserService,
	sessions *auth.Sessions,
	logger *zap.Logger,
	m *metrics.Auth,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		sessions:    sessions,
		logger:      logger,
		metrics:     m,
	}
}

// SignupRequest represents a user signup request.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"max=100"`
	Username string `json:"username" validate:"max=30"`
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"maxbytes=72"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup godoc
// @Summary Create an account
// @Description Validates the form, stores the user and starts a session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	const op = "signup"

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.logger, h.metrics, op, apperrors.ErrInvalidRequest)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.logger, h.metrics, op, err)
	}

	user, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, h.logger, h.metrics, op, err)
	}

	// the cookie is only issued once the user is persisted
	if err := h.sessions.Issue(c, user.ID); err != nil {
		return respondError(c, h.logger, h.metrics, op, err)
	}

	h.metrics.Observe(op, http.StatusCreated)
	return c.JSON(http.StatusCreated, newUserResponse(user))
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	const op = "login"

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.logger, h.metrics, op, apperrors.ErrInvalidRequest)
	}

	user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, h.logger, h.metrics, op, err)
	}

	if err := h.sessions.Issue(c, user.ID); err != nil {
		return respondError(c, h.logger, h.metrics, op, err)
	}

	h.metrics.Observe(op, http.StatusOK)
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// Logout godoc
// @Summary Log out
// @Description Expires the session cookie and revokes its token.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	const op = "logout"

	if err := h.authService.Logout(c.Request().Context(), h.sessions.Token(c)); err != nil {
		// revocation is best effort; the cookie is cleared regardless
		h.logger.Warn("revoke session token", zap.Error(err))
	}
	h.sessions.Clear(c)

	h.metrics.Observe(op, http.StatusOK)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// GetMe godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Security CookieAuth
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c echo.Context) error {
	const op = "me"

	id, ok := auth.CallerID(c)
	if !ok {
		h.metrics.Observe(op, http.StatusUnauthorized)
		return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "Unauthorized: Invalid Token"})
	}

	user, err := h.userService.GetMe(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, h.metrics, op, err)
	}

	h.metrics.Observe(op, http.StatusOK)
	return c.JSON(http.StatusOK, user)
}
