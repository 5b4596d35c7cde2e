package finance

import "errors"

var (
	// ErrMissingDescription is returned when the description is empty
	ErrMissingDescription = errors.New("description is required")

	// ErrInvalidAmount is returned for a zero or negative amount
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidType is returned for an unknown record type
	ErrInvalidType = errors.New("invalid record type")

	// ErrMissingDate is returned when the date is empty
	ErrMissingDate = errors.New("date is required")

	// ErrRecordNotFound is returned when a record is not found
	ErrRecordNotFound = errors.New("financial record not found")
)
