// Package errors provides structured, display-ready error handling for the client.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a failure for handling and display.
type ErrorType string

const (
	// TypeValidation indicates invalid input caught before any network call.
	TypeValidation ErrorType = "validation"
	// TypeAuth indicates rejected or expired credentials.
	TypeAuth ErrorType = "auth"
	// TypeNotFound indicates a missing resource.
	TypeNotFound ErrorType = "not_found"
	// TypeConflict indicates a resource conflict (e.g. email already registered).
	TypeConflict ErrorType = "conflict"
	// TypeTransport indicates the server could not be reached.
	TypeTransport ErrorType = "transport"
	// TypeServer indicates the server failed to process the request.
	TypeServer ErrorType = "server"
)

// FallbackMessage is shown when no better message is available.
const FallbackMessage = "Something went wrong. Please try again."

// Error is a structured error with a category and a message fit for display.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithField adds a context field to the error (chainable).
func (e *Error) WithField(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ValidationError creates a new validation error.
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// AuthError creates a new authentication error.
func AuthError(message string) *Error {
	return &Error{Type: TypeAuth, Message: message}
}

// NotFoundError creates a new not-found error.
func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

// ConflictError creates a new conflict error.
func ConflictError(message string) *Error {
	return &Error{Type: TypeConflict, Message: message}
}

// TransportError creates a new transport error.
func TransportError(message string, cause error) *Error {
	return &Error{Type: TypeTransport, Message: message, Cause: cause}
}

// ServerError creates a new server-side error.
func ServerError(message string, cause error) *Error {
	return &Error{Type: TypeServer, Message: message, Cause: cause}
}

// IsType reports whether err is a structured error of the given type.
func IsType(err error, t ErrorType) bool {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.Type == t
	}
	return false
}

// DisplayMessage extracts a message suitable for showing to the user.
// Structured errors carry their own message; anything else degrades to the
// generic fallback so internal details never leak into the UI.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var structured *Error
	if errors.As(err, &structured) && structured.Message != "" {
		return structured.Message
	}
	return FallbackMessage
}
