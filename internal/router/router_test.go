package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"xclone/internal/auth"
	"xclone/internal/config"
	apperrors "xclone/internal/errors"
	"xclone/internal/handler"
	"xclone/internal/metrics"
)

type sample struct {
	Name     string `json:"name" validate:"max=3"`
	Password string `json:"password" validate:"maxbytes=4"`
	Hidden   string `json:"-" validate:"max=1"`
}

func TestCustomValidator(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&sample{Name: "abc", Password: "abcd"}))

	tests := []struct {
		name string
		in   sample
		msg  string
	}{
		{"too many characters", sample{Name: "abcd"}, "name must be at most 3 characters long"},
		{"multibyte counts bytes", sample{Password: "éé€"}, "password must be at most 4 bytes long"},
		{"untagged field name", sample{Hidden: "xy"}, "Hidden must be at most 1 characters long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.in)
			httpErr := apperrors.MapErrorToHTTP(err)
			assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
			assert.Equal(t, tt.msg, httpErr.Message)
		})
	}
}

func newRoutedEcho(t *testing.T, rateLimit float64) *echo.Echo {
	t.Helper()
	cfg := &config.Config{CookieName: "jwt", AuthRateLimit: rateLimit, CORSOrigins: []string{"http://localhost:3000"}}
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	store := auth.NewTokenStore(nil)
	reg := prometheus.NewRegistry()
	m := metrics.NewAuth(reg)
	sessions := auth.NewSessions(jwtService, cfg.CookieName, false)

	e := echo.New()
	Register(e, Deps{
		Config:      cfg,
		Logger:      zap.NewNop(),
		Gatherer:    reg,
		JWTService:  jwtService,
		TokenStore:  store,
		AuthHandler: handler.NewAuthHandler(nil, nil, sessions, zap.NewNop(), m),
		UserHandler: handler.NewUserHandler(nil, zap.NewNop(), m),
	})
	return e
}

func TestRegister_PublicRoutes(t *testing.T) {
	e := newRoutedEcho(t, 0)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_ProtectedRoutesNeedSession(t *testing.T) {
	e := newRoutedEcho(t, 0)

	for _, path := range []string{"/api/auth/me", "/api/users/profile/ab1"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"error":"Unauthorized: No Token Provided"}`, rec.Body.String())
	}
}

func TestRegister_AuthRateLimit(t *testing.T) {
	e := newRoutedEcho(t, 1)

	var codes []int
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	require.Len(t, codes, 5)
	assert.Contains(t, codes, http.StatusTooManyRequests)
	assert.Equal(t, http.StatusUnauthorized, codes[0])
}
