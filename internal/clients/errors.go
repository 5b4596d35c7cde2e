package clients

import "errors"

var (
	// ErrInvalidName is returned when the name is empty
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidStatus is returned for an unknown client status
	ErrInvalidStatus = errors.New("invalid client status")

	// ErrInvalidStage is returned for an unknown treatment stage
	ErrInvalidStage = errors.New("invalid treatment stage")

	// ErrClientNotFound is returned when a client is not found
	ErrClientNotFound = errors.New("client not found")
)
