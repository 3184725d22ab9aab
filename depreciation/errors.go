/*
errors.go - Error types for the depreciation engine

PURPOSE:
  Every failure the engine can report is a client-input problem. All of
  them are raised before generation starts, so no partial schedule is
  ever returned.

ERROR CATEGORIES:
  1. ErrInvalidInput - a field violates a rule (wrapped by ValidationError)
  2. ErrUnsupportedMethod - the method is outside the closed set

USAGE:
  if errors.Is(err, depreciation.ErrInvalidInput) {
      // respond 400
  }
*/
package depreciation

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is returned when a request field violates a rule.
	ErrInvalidInput = errors.New("invalid depreciation input")

	// ErrUnsupportedMethod is returned for a method outside Methods().
	ErrUnsupportedMethod = errors.New("unsupported depreciation method")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError names the offending field and the rule it broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// UnsupportedMethodError carries the method value that was rejected.
type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported depreciation method: %q", e.Method)
}

func (e *UnsupportedMethodError) Unwrap() error {
	return ErrUnsupportedMethod
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrUnsupportedMethod)
}
