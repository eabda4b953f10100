// Package apperrors defines the error taxonomy surfaced by the HTTP layer.
// Every error crossing a handler boundary is one of these types or a
// wrapped form of one; the fiber error handler maps them to status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or missing request field. Surfaced
// as a client error before any store or provider is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation creates a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// GatewayError reports an upstream provider failure. Status carries the
// upstream HTTP status when one was received, 0 for transport failures.
type GatewayError struct {
	Provider string
	Status   int
	Detail   string
	Err      error
}

func (e *GatewayError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, e.Detail)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// AuthenticationError reports a failed credential exchange with a provider.
// Never retried, never silently degraded to a stale token.
type AuthenticationError struct {
	Provider string
	Detail   string
	Err      error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s authentication failed: %s", e.Provider, e.Detail)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// StorageUnavailable reports that the document store is not configured or
// not reachable. The diagnostic endpoint reports these states distinctly.
type StorageUnavailable struct {
	Reason string
	Err    error
}

func (e *StorageUnavailable) Error() string {
	return fmt.Sprintf("document store unavailable: %s", e.Reason)
}

func (e *StorageUnavailable) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorageUnavailable reports whether err is (or wraps) a StorageUnavailable.
func IsStorageUnavailable(err error) bool {
	var se *StorageUnavailable
	return errors.As(err, &se)
}
