package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidEmail is returned when the signup email does not look like local@domain.tld.
	ErrInvalidEmail = errors.New("Invalid email format")
	// ErrUsernameTaken is returned when another user already owns the username.
	ErrUsernameTaken = errors.New("Username is already taken")
	// ErrEmailTaken is returned when another user already owns the email.
	ErrEmailTaken = errors.New("Email is already taken")
	// ErrPasswordTooShort is returned when the signup password has fewer than 6 characters.
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters long")
	// ErrInvalidUserData is returned when a user record cannot be built from the input.
	ErrInvalidUserData = errors.New("Invalid user Data")
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("Invalid username or password")
	// ErrUserNotFound is returned when a user looked up by id or username does not exist.
	ErrUserNotFound = errors.New("User not found")
	// ErrInvalidRequest is returned when the request body cannot be decoded.
	ErrInvalidRequest = errors.New("Invalid request body")
)

// InternalMessage is the only detail exposed for unexpected failures.
const InternalMessage = "Internal Server Error"

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// IsInternal reports whether the error is reported to clients as a generic 500.
func (e *HTTPError) IsInternal() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped domain errors are
// recognised; anything unknown becomes a 500 with a generic message.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrUsernameTaken),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrInvalidUserData),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidRequest):
		return NewHTTPError(http.StatusBadRequest, rootMessage(err))
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, InternalMessage)
	}
}

// rootMessage returns the message of the sentinel error wrapped in err,
// so wrapping context never leaks to clients.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		ErrInvalidEmail, ErrUsernameTaken, ErrEmailTaken, ErrPasswordTooShort,
		ErrInvalidUserData, ErrInvalidCredentials, ErrInvalidRequest,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
