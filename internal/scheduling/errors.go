package scheduling

import "errors"

var (
	// ErrMissingName is returned when the booking has no client name
	ErrMissingName = errors.New("client name is required")

	// ErrMissingDateTime is returned when date or time is missing
	ErrMissingDateTime = errors.New("date and time are required")

	// ErrSlotTaken is returned when a non-cancelled appointment already
	// occupies the requested slot
	ErrSlotTaken = errors.New("slot already booked")
)
