// Package apperr defines the status-coded error type carried from handlers
// to the single response boundary that formats error envelopes.
package apperr

import (
	"errors"
	"net/http"
)

// Error represents a domain failure with an HTTP status code.
// Handlers return it; they never format error responses themselves.
type Error struct {
	Message string
	Errors  []string
	Code    int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with an arbitrary status code.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation creates a 400 error for invalid or missing input.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Auth creates a 401 error for failed authentication.
func Auth(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict creates a 409 error for uniqueness violations.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Internal creates a 500 error.
func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// Upload creates an error for a failed media upload.
// code is 400 when the client input is at fault, 500 for host failures.
func Upload(code int, message string) *Error {
	return New(code, message)
}

// From extracts an *Error from err. Unknown errors map to a generic 500
// so internals are never leaked to the client.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error")
}
