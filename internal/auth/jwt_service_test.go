package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	userID := uuid.New()

	token, issued, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, issued.ID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, issued.ID, claims.ID)

	id, err := claims.CallerID()
	require.NoError(t, err)
	assert.Equal(t, userID, id)

	remaining := svc.RemainingTTL(claims)
	assert.True(t, remaining > 59*time.Minute && remaining <= time.Hour)
}

func TestJWTService_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultSessionTTL, NewJWTService("s", 0).TTL())
	assert.Equal(t, 15*24*time.Hour, DefaultSessionTTL)
}

func TestJWTService_ValidateRejects(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	userID := uuid.New()

	otherSecret, _, err := NewJWTService("other-secret", time.Hour).GenerateToken(userID)
	require.NoError(t, err)

	expiredSvc := NewJWTService("test-secret", time.Hour)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredSvc.GenerateToken(userID)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: userID.String()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "not-a-uuid"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":      "not.a.token",
		"empty":        "",
		"wrong secret": otherSecret,
		"expired":      expired,
		"alg none":     noneAlg,
		"bad subject":  badSubject,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_RemainingTTL(t *testing.T) {
	svc := NewJWTService("s", time.Hour)
	assert.Zero(t, svc.RemainingTTL(nil))
	assert.Zero(t, svc.RemainingTTL(&Claims{}))

	past := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}}
	assert.Zero(t, svc.RemainingTTL(past))
}
