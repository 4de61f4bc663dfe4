package bookings

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidRange   = fmt.Errorf("%w: invalid range", ErrInvalidRequest)

	ErrSlotTaken        = errors.New("slot already booked")
	ErrNotFound         = errors.New("booking not found")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("booking store unavailable")
)

// ValidationError carries a client-facing message. It matches
// ErrInvalidRequest (and ErrInvalidRange for range problems) via errors.Is.
type ValidationError struct {
	msg  string
	kind error
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func validationError(msg string) error {
	return &ValidationError{msg: msg, kind: ErrInvalidRequest}
}

func rangeError(msg string) error {
	return &ValidationError{msg: msg, kind: ErrInvalidRange}
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
