// Package apperrors defines the coded error values returned by services.
// Domain-rule failures are plain values compared by code; unexpected faults
// are wrapped with an operation-specific code so the original cause is never
// leaked past the service boundary unformatted.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is the repository-level sentinel for missing rows.
// Repositories return it instead of sql.ErrNoRows; callers match with errors.Is.
var ErrNotFound = errors.New("not found")

// Error is an application error with a stable machine-readable code, a
// human-readable message, and an HTTP status used by the transport layer.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches coded errors by code, so the sentinel values declared in this
// package keep working with errors.Is after wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func BadRequest(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusBadRequest}
}

func NotFound(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusNotFound}
}

func Unauthorized(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusUnauthorized}
}

func Internal(code, message string) *Error {
	return &Error{Code: code, Message: message, Status: http.StatusInternalServerError}
}

// FromError converts an unexpected fault into a coded error carrying the
// cause's message text. Services use it as the catch-all at the top of each
// operation.
func FromError(code string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: cause.Error(),
		Status:  http.StatusInternalServerError,
		Cause:   cause,
	}
}

// AsError extracts an *Error from err, or nil if err carries no code.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
