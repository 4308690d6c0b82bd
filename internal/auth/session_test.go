package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestSessions_Issue(t *testing.T) {
	jwtService := NewJWTService("test-secret", 24*time.Hour)
	sessions := NewSessions(jwtService, "", true)
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/", nil))
	userID := uuid.New()

	require.NoError(t, sessions.Issue(c, userID))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "jwt", cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 86400, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	claims, err := jwtService.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
}

func TestSessions_ClearExpiresImmediately(t *testing.T) {
	sessions := NewSessions(NewJWTService("test-secret", time.Hour), "jwt", false)
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/", nil))

	sessions.Clear(c)

	header := rec.Header().Get(echo.HeaderSetCookie)
	assert.True(t, strings.HasPrefix(header, "jwt=;"), header)
	assert.Contains(t, header, "Max-Age=0")
	assert.NotContains(t, header, "Secure")
}

func TestSessions_Token(t *testing.T) {
	sessions := NewSessions(NewJWTService("test-secret", time.Hour), "sid", false)
	assert.Equal(t, "sid", sessions.CookieName())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := newContext(req)
	assert.Empty(t, sessions.Token(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	c, _ = newContext(req)
	assert.Equal(t, "abc", sessions.Token(c))
}
