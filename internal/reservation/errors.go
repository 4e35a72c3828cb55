// Package reservation defines the slot allocator and the error values it
// reports.  Callers distinguish failure kinds with errors.Is: ErrInvalidInput
// is caller-fixable, ErrSlotFull may succeed later once capacity frees up,
// and ErrNotFound means the id or position does not reference a reservation.
package reservation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a name, slot or payment method fails
// validation.  The more specific errors below wrap it.
var ErrInvalidInput = errors.New("invalid input")

// ErrSlotFull is returned when the requested slot is at its capacity
// ceiling.
var ErrSlotFull = errors.New("slot full")

// ErrNotFound is returned when no reservation has the requested id.
var ErrNotFound = errors.New("reservation not found")

var (
	ErrEmptyName            = fmt.Errorf("%w: full name is empty", ErrInvalidInput)
	ErrSlotOutOfRange       = fmt.Errorf("%w: slot out of range", ErrInvalidInput)
	ErrUnknownPaymentMethod = fmt.Errorf("%w: unknown payment method", ErrInvalidInput)
	ErrInvalidPolicy        = fmt.Errorf("%w: invalid slot policy", ErrInvalidInput)

	// ErrInvalidPosition is a NotFound for positional access.
	ErrInvalidPosition = fmt.Errorf("%w: invalid position", ErrNotFound)
)
