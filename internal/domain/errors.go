package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these onto HTTP statuses; the service layer
// never swallows one, and a rejected transition always leaves the stored
// booking unchanged.
var (
	// ErrValidation marks malformed input: bad date order, self-booking,
	// a resource not listed as available. Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown booking or resource id.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an actor who is neither owner nor borrower of the
	// booking in question.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition marks a status change the state machine does not
	// allow, including any transition out of a terminal status.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrConflict marks a lost optimistic race or a window that is no
	// longer free at approval time. The only kind the caller may retry,
	// after re-fetching.
	ErrConflict = errors.New("conflict")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// TransitionError carries the attempted edge so callers can refresh stale
// UI state with both the current and the requested status.
type TransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot move booking from %q to %q", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
