package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid email", ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
		{"username taken", ErrUsernameTaken, http.StatusBadRequest, "Username is already taken"},
		{"email taken wrapped", fmt.Errorf("create user: %w", ErrEmailTaken), http.StatusBadRequest, "Email is already taken"},
		{"short password", ErrPasswordTooShort, http.StatusBadRequest, "Password must be at least 6 characters long"},
		{"invalid user data", ErrInvalidUserData, http.StatusBadRequest, "Invalid user Data"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusBadRequest, "Invalid username or password"},
		{"not found", fmt.Errorf("get me: %w", ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"explicit http error", NewHTTPError(http.StatusBadRequest, "password must be at most 72 characters long"), http.StatusBadRequest, "password must be at most 72 characters long"},
		{"infrastructure", errors.New("dial tcp 127.0.0.1:3306: connection refused"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
			assert.Equal(t, ErrorResponse{Error: tt.wantMsg}, httpErr.ToErrorResponse())
			assert.Equal(t, tt.wantStatus >= 500, httpErr.IsInternal())
		})
	}
}
