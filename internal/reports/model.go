package reports

import (
	"strings"
	"time"
)

// SessionReport is the clinical record written after a session. Content holds
// the session summary; observations, evolution and conduct follow the
// practitioner's SOAP-like note structure.
type SessionReport struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId"`
	ClientID      string    `json:"clientId"`
	Content       string    `json:"content"`
	Date          string    `json:"date"`
	Observations  string    `json:"observations"`
	Evolution     string    `json:"evolution"`
	Conduct       string    `json:"conduct"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateReportRequest is the payload to record a session report.
type CreateReportRequest struct {
	AppointmentID string `json:"appointmentId"`
	ClientID      string `json:"clientId"`
	Content       string `json:"content"`
	Date          string `json:"date"`
	Observations  string `json:"observations"`
	Evolution     string `json:"evolution"`
	Conduct       string `json:"conduct"`
}

// Validate checks required fields.
func (r *CreateReportRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return ErrMissingClient
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrMissingContent
	}
	if strings.TrimSpace(r.Date) == "" {
		return ErrMissingDate
	}
	return nil
}

// UpdateReportRequest carries partial report updates.
type UpdateReportRequest struct {
	Content      *string `json:"content,omitempty"`
	Observations *string `json:"observations,omitempty"`
	Evolution    *string `json:"evolution,omitempty"`
	Conduct      *string `json:"conduct,omitempty"`
}
