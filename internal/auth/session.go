package auth

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DefaultCookieName is the session cookie name used by the web client.
const DefaultCookieName = "jwt"

// Sessions issues and clears the session cookie carrying a signed token.
type Sessions struct {
	jwt        *JWTService
	cookieName string
	secure     bool
}

// NewSessions creates a cookie issuer. Cookies are marked Secure when secure is set.
func NewSessions(jwtService *JWTService, cookieName string, secure bool) *Sessions {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Sessions{jwt: jwtService, cookieName: cookieName, secure: secure}
}

// CookieName returns the name of the session cookie.
func (s *Sessions) CookieName() string {
	return s.cookieName
}

// Issue signs a token for userID and attaches it to the response as the session cookie.
func (s *Sessions) Issue(c echo.Context, userID uuid.UUID) error {
	token, _, err := s.jwt.GenerateToken(userID)
	if err != nil {
		return err
	}
	c.SetCookie(s.cookie(token, int(s.jwt.TTL().Seconds()), time.Now().Add(s.jwt.TTL())))
	return nil
}

// Clear overwrites the session cookie with an empty, immediately expiring one.
func (s *Sessions) Clear(c echo.Context) {
	// MaxAge < 0 is rendered as "Max-Age=0"
	c.SetCookie(s.cookie("", -1, time.Unix(0, 0)))
}

// Token returns the raw session token sent with the request, if any.
func (s *Sessions) Token(c echo.Context) string {
	cookie, err := c.Cookie(s.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *Sessions) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
