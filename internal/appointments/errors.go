package appointments

import "errors"

var (
	// ErrMissingClient is returned when no client id is given
	ErrMissingClient = errors.New("client id is required")

	// ErrMissingDateTime is returned when date or time is missing
	ErrMissingDateTime = errors.New("date and time are required")

	// ErrInvalidType is returned for an unknown appointment type
	ErrInvalidType = errors.New("invalid appointment type")

	// ErrAppointmentNotFound is returned when an appointment is not found
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAlreadyFinal is returned when completing or cancelling an
	// appointment that already left the scheduled state
	ErrAlreadyFinal = errors.New("appointment is not scheduled")
)
