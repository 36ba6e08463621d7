package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an id-keyed lookup yields nothing.
// Wrap it with context: fmt.Errorf("order %q: %w", id, domain.ErrNotFound).
var ErrNotFound = errors.New("not found")

// ErrStatusConflict is reported by the order store when a conditional status
// write finds the row in a different status than expected. It means another
// writer advanced the order between our read and our write.
var ErrStatusConflict = errors.New("order status changed concurrently")

// ValidationError rejects malformed input at construction time. It is never
// recovered internally; the driving layer maps it to a 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// BusinessRuleError signals a request that is well-formed but violates a
// domain rule (pre-assigned status, empty patch, double payment
// confirmation). The reason is meant to be shown to the caller.
type BusinessRuleError struct {
	Reason string
}

func (e *BusinessRuleError) Error() string {
	return e.Reason
}

func NewBusinessRuleError(reason string) error {
	return &BusinessRuleError{Reason: reason}
}
