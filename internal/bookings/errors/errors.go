package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotTaken means a booking already occupies the (date, time)
	// slot. Raised both by the advisory existence check and by the
	// unique slot index at write time.
	ErrSlotTaken = errors.New("slot already has a booking")
)
