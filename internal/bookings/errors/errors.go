package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotTaken surfaces the unique-index violation on slot_id: another
	// non-cancelled booking already holds the slot.
	ErrSlotTaken = errors.New("slot is already booked")
)
