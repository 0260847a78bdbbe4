package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target carries the same code, so cloned and wrapped
// errors still match their predefined sentinel.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials      = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username or password")
	ErrUnauthorized            = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrRoleNotPermitted        = New("ROLE_NOT_PERMITTED", http.StatusForbidden, "role is not permitted to invoke this operation")
	ErrNotFound                = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation              = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInvalidRoleForApproval  = New("INVALID_ROLE_FOR_APPROVAL", http.StatusBadRequest, "invalid role for approval")
	ErrRequestAlreadyResolved  = New("REQUEST_ALREADY_RESOLVED", http.StatusConflict, "role request already resolved")
	ErrRemote                  = New("REMOTE_ERROR", http.StatusBadGateway, "remote store rejected the call")
	ErrRemoteUnavailable       = New("REMOTE_UNAVAILABLE", http.StatusServiceUnavailable, "remote store is unreachable")
	ErrUnsupportedExportFormat = New("UNSUPPORTED_FORMAT", http.StatusNotAcceptable, "unsupported export format")
	ErrInternal                = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
