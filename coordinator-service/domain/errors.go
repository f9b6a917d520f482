package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrVersionConflict is returned by repositories when an optimistic lock
// update finds a newer version than the one read.
var ErrVersionConflict = errors.New("version conflict")

// ErrBookingNotFound is returned when no booking exists for the given ID
var ErrBookingNotFound = errors.New("booking not found")

// ErrSagaNotFound is returned when no saga instance exists for the booking
var ErrSagaNotFound = errors.New("saga instance not found")

// ValidationError indicates a request that can never succeed as formulated.
// It is surfaced to the caller without creating any booking.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UnknownJobError indicates a step result arrived for a booking the
// coordinator does not track. Logged and dropped, never fatal.
type UnknownJobError struct {
	BookingID string
	Step      string
}

func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("unknown job: booking %s step %s", e.BookingID, e.Step)
}

// IsUnknownJobError reports whether err wraps an UnknownJobError
func IsUnknownJobError(err error) bool {
	var uje *UnknownJobError
	return errors.As(err, &uje)
}

// UnexpectedTransitionError indicates an event that is neither admissible in
// the current state nor a replay of one already recorded.
type UnexpectedTransitionError struct {
	BookingID string
	State     string
	Event     string
}

func (e *UnexpectedTransitionError) Error() string {
	return fmt.Sprintf("unexpected transition: booking %s event %s in state %s", e.BookingID, e.Event, e.State)
}

// IsUnexpectedTransitionError reports whether err wraps an UnexpectedTransitionError
func IsUnexpectedTransitionError(err error) bool {
	var ute *UnexpectedTransitionError
	return errors.As(err, &ute)
}
