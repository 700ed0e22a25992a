// Package apperr defines the error kinds returned by the inventory core.
// Callers match them with errors.Is; the delivery shell maps each kind to a response.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidation marks a missing or malformed input field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a reference to an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an operation refused by a business rule.
	ErrConflict = errors.New("conflict")
	// ErrDuplicateUsername marks a registration for a username that is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrAuthentication is returned for any failed login. It never says which half of the pair was wrong.
	ErrAuthentication = errors.New("invalid credentials")
	// ErrUnauthenticated is returned when an operation is called without a caller identity.
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError carries a message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validation builds a ValidationError for a single field.
func Validation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// NotFound reports a missing entity, e.g. "aisle with ID 3 not found".
func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s with ID %d %w", entity, id, ErrNotFound)
}

// Conflict wraps ErrConflict with a reason.
func Conflict(reason string) error {
	return fmt.Errorf("%w: %s", ErrConflict, reason)
}
