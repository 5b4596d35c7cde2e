package appointments

import (
	"strings"
	"time"
)

// Type distinguishes the two session kinds the clinic offers.
type Type string

const (
	TypeClinical        Type = "Clinical"
	TypeNeuropsychology Type = "Neuropsychology"
)

// Status is the appointment lifecycle state. scheduled may move to completed
// or cancelled; both are terminal.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Appointment represents a booked session.
type Appointment struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	Type      Type      `json:"type"`
	Status    Status    `json:"status"`
	MeetLink  string    `json:"meetLink,omitempty"`
	Price     float64   `json:"price"`
	Duration  int       `json:"duration"` // minutes
	CreatedAt time.Time `json:"created_at"`
}

// CreateAppointmentRequest is the request body for manual admin scheduling.
type CreateAppointmentRequest struct {
	ClientID string  `json:"clientId"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Type     Type    `json:"type"`
	MeetLink string  `json:"meetLink"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

// Validate checks required fields and normalizes defaults.
func (r *CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return ErrMissingClient
	}
	if strings.TrimSpace(r.Date) == "" || strings.TrimSpace(r.Time) == "" {
		return ErrMissingDateTime
	}
	if r.Type == "" {
		r.Type = TypeClinical
	}
	if r.Type != TypeClinical && r.Type != TypeNeuropsychology {
		return ErrInvalidType
	}
	return nil
}
