package kanban

import (
	"strings"
	"time"
)

// Status is the board column a task sits in.
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Valid reports whether the status is a known board column.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Task is a card on the admin's workflow board. ClientID optionally ties the
// task to a client record.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ClientID  string    `json:"clientId,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskRequest is the payload to add a card.
type CreateTaskRequest struct {
	Title    string `json:"title"`
	ClientID string `json:"clientId,omitempty"`
	Status   Status `json:"status,omitempty"`
}

// Validate checks required fields and defaults the column to todo.
func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	if r.Status == "" {
		r.Status = StatusTodo
	}
	if !r.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// UpdateTaskRequest carries partial task edits.
type UpdateTaskRequest struct {
	Title    *string `json:"title,omitempty"`
	ClientID *string `json:"clientId,omitempty"`
	Status   *Status `json:"status,omitempty"`
}

// Validate rejects unknown columns.
func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return ErrMissingTitle
	}
	if r.Status != nil && !r.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
