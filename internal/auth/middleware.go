package auth

import (
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "xclone/internal/errors"
)

// ContextClaimsKey is where the middleware stores *Claims in the echo context.
const ContextClaimsKey = "session"

const (
	msgNoToken      = "Unauthorized: No Token Provided"
	msgInvalidToken = "Unauthorized: Invalid Token"
)

// RequireSession returns middleware that authenticates requests by the session cookie.
// Tokens revoked through logout are rejected.
func RequireSession(jwtService *JWTService, store TokenStoreInterface, cookieName string) echo.MiddlewareFunc {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + cookieName,
		ContextKey:  ContextClaimsKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			revoked, err := store.IsRevoked(c.Request().Context(), claims.ID)
			if err != nil {
				return nil, err
			}
			if revoked {
				return nil, ErrRevokedToken
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			msg := msgInvalidToken
			if cookie, cerr := c.Cookie(cookieName); cerr != nil || cookie.Value == "" {
				msg = msgNoToken
			}
			return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: msg})
		},
	})
}

// CallerID returns the authenticated user id set by RequireSession.
func CallerID(c echo.Context) (uuid.UUID, bool) {
	claims, ok := c.Get(ContextClaimsKey).(*Claims)
	if !ok {
		return uuid.Nil, false
	}
	id, err := claims.CallerID()
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SetCaller stores claims for userID in the context, as RequireSession would.
func SetCaller(c echo.Context, userID uuid.UUID) {
	c.Set(ContextClaimsKey, &Claims{UserID: userID.String()})
}
