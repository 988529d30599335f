package apperrors

import (
	"errors"
	"net/http"
)

// Standard error types for failures observed while talking to the backend
var (
	ErrTransport   = errors.New("transport failure")
	ErrRemote      = errors.New("backend reported error")
	ErrAuthExpired = errors.New("authentication expired")
	ErrUnexpected  = errors.New("unexpected error")
)

// GenericMessage is shown to the user when the backend did not supply one.
const GenericMessage = "An unexpected error occurred"

// AppError represents a failure with the context needed to show the user
// a meaningful message
type AppError struct {
	Err        error
	StatusCode int
	Message    string
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters
func NewAppError(err error, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewTransportError wraps a failure to reach the backend at all
func NewTransportError(message string) *AppError {
	return NewAppError(ErrTransport, message, 0)
}

// NewRemoteError wraps a server-reported validation or business error
func NewRemoteError(message string, statusCode int) *AppError {
	return NewAppError(ErrRemote, message, statusCode)
}

// NewAuthExpiredError wraps a 401 that survived the refresh attempt
func NewAuthExpiredError(message string) *AppError {
	return NewAppError(ErrAuthExpired, message, http.StatusUnauthorized)
}

// NewUnexpectedError wraps everything that fits no other class
func NewUnexpectedError(message string) *AppError {
	return NewAppError(ErrUnexpected, message, 0)
}

// IsAuthExpired checks whether the error is an authentication failure
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

// IsRemote checks whether the error carries a server-reported message
func IsRemote(err error) bool {
	return errors.Is(err, ErrRemote)
}

// UserMessage extracts the message to surface to the user. Server-provided
// messages win; transport and unexpected failures fall back to a generic
// one, keeping their detail in the logs only.
func UserMessage(err error) string {
	var appErr *AppError

	if errors.As(err, &appErr) && appErr.Message != "" {
		if errors.Is(appErr.Err, ErrRemote) || errors.Is(appErr.Err, ErrAuthExpired) {
			return appErr.Message
		}
	}

	return GenericMessage
}

// StatusCode returns the HTTP status carried by the error, or 0 when the
// failure never produced a response.
func StatusCode(err error) int {
	var appErr *AppError

	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	return 0
}
