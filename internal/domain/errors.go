// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Callers classify failures with
// errors.Is against these sentinels; anything that matches none of them is
// treated as unexpected and its message is never shown to clients.
var (
	// ErrUnauthenticated is returned when a token is missing, malformed,
	// expired, or carries an invalid signature.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when the principal lacks the role or ownership
	// required for an operation. It is also returned for resource-scoped checks
	// against rows that do not exist, so callers cannot enumerate ids.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a referenced entity is absent or soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a task status change is not allowed,
	// e.g. setting ARCHIVED anywhere other than the archive operation.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidFilter is returned for malformed list-query parameters.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrConflict is returned when a write would violate a uniqueness rule.
	ErrConflict = errors.New("conflict")

	// ErrInvalidCredentials is returned when a username/password pair does not
	// match. It deliberately does not say which half was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes a single invalid field. It unwraps to ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsKnown reports whether err belongs to the error taxonomy. Errors that are not
// known are reported to clients as unexpected.
func IsKnown(err error) bool {
	for _, sentinel := range []error{
		ErrUnauthenticated,
		ErrForbidden,
		ErrNotFound,
		ErrInvalidTransition,
		ErrInvalidFilter,
		ErrConflict,
		ErrInvalidCredentials,
		ErrValidation,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
