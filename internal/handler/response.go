package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "xclone/internal/errors"
	"xclone/internal/metrics"
	"xclone/internal/model"
)

// UserResponse is the sanitized user returned by signup and login.
type UserResponse struct {
	ID         uuid.UUID   `json:"_id"`
	FullName   string      `json:"fullName"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Followers  []uuid.UUID `json:"followers"`
	Following  []uuid.UUID `json:"following"`
	ProfileImg string      `json:"profileImg"`
	CoverImg   string      `json:"coverImg"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

func newUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		Email:      u.Email,
		Followers:  u.Followers,
		Following:  u.Following,
		ProfileImg: u.ProfileImg,
		CoverImg:   u.CoverImg,
	}
	if resp.Followers == nil {
		resp.Followers = []uuid.UUID{}
	}
	if resp.Following == nil {
		resp.Following = []uuid.UUID{}
	}
	return resp
}

// respondError writes err as {"error": ...}. Internal failures are logged with
// their cause and reported with a generic message.
func respondError(c echo.Context, log *zap.Logger, m *metrics.Auth, op string, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.IsInternal() {
		log.Error("Error in "+op+" handler",
			zap.Error(err),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
	}
	m.Observe(op, httpErr.StatusCode)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}
