package kanban

import "errors"

var (
	// ErrMissingTitle is returned when a task has no title.
	ErrMissingTitle = errors.New("kanban: title is required")

	// ErrInvalidStatus is returned for columns outside todo/doing/done.
	ErrInvalidStatus = errors.New("kanban: invalid status")

	// ErrTaskNotFound is returned when a task does not exist.
	ErrTaskNotFound = errors.New("kanban: task not found")
)
