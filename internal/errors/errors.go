// Package errors provides the structured error taxonomy shared by every flow.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error for metrics and message formatting.
type ErrorType string

const (
	// TypeValidation indicates a client-side precondition failure; no network call was made.
	TypeValidation ErrorType = "validation"
	// TypeAuth indicates bad credentials or a rejected session.
	TypeAuth ErrorType = "auth"
	// TypeNetwork indicates a non-success HTTP response or a transport failure.
	TypeNetwork ErrorType = "network"
	// TypeUnknown covers failures no other category claims.
	TypeUnknown ErrorType = "unknown"
)

// Error is a structured error with type, user-facing message, and optional
// HTTP status. StatusCode is zero when no response was received at all.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
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

// UserMessage returns the message string flows hand to the presentation layer.
func (e *Error) UserMessage() string {
	return e.Message
}

// ValidationError creates a client-side precondition error.
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// AuthError creates an authentication/authorization error.
func AuthError(message string) *Error {
	return &Error{Type: TypeAuth, Message: message}
}

// NetworkError creates an error for a non-success HTTP response.
func NetworkError(message string, statusCode int) *Error {
	return &Error{Type: TypeNetwork, Message: message, StatusCode: statusCode}
}

// TransportError creates a network error for a request that got no response
// at all. The status code stays zero.
func TransportError(cause error) *Error {
	return &Error{Type: TypeNetwork, Message: cause.Error(), Cause: cause}
}

// UnknownError wraps an unclassified failure.
func UnknownError(cause error) *Error {
	return &Error{Type: TypeUnknown, Message: "unexpected error", Cause: cause}
}

// AsError converts any error into a structured Error.
// If err is already an *Error, returns it unchanged.
// Otherwise wraps it as an unknown error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}

	return UnknownError(err)
}

// IsType reports whether err is a structured Error of the given type.
func IsType(err error, t ErrorType) bool {
	var structured *Error
	if !errors.As(err, &structured) {
		return false
	}
	return structured.Type == t
}
