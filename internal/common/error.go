// Package common defines the sentinel errors and validation error type
// shared between the services, repositories, and the HTTP boundary.
// Callers match these values with errors.Is (or errors.As for
// *ValidationError).
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("an unexpected server error occurred")
	ErrorEmailTaken = errors.New("this email address is already in use")

	// ErrInvalidCredentials deliberately uses one message for both the
	// unknown-user and wrong-password cases so callers cannot tell
	// which of the two happened.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Refresh-token lifecycle errors.
	ErrInvalidToken = errors.New("invalid refresh token")
	ErrTokenExpired = errors.New("refresh token expired")
	ErrTokenRevoked = errors.New("refresh token revoked")
)

// ValidationError reports every input violation at once rather than
// stopping at the first.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError wraps a non-empty list of violation messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
