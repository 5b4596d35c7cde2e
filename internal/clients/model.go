package clients

import (
	"strings"
	"time"
)

// Status tracks whether a client is currently in care.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// TreatmentStage tracks where a client is in the treatment flow.
type TreatmentStage string

const (
	StageFirstContact TreatmentStage = "First Contact"
	StageEvaluation   TreatmentStage = "Evaluation"
	StageInTreatment  TreatmentStage = "In Treatment"
	StageDischarged   TreatmentStage = "Discharged"
)

// Client represents a patient of the clinic.
type Client struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	Address         string         `json:"address"`
	Status          Status         `json:"status"`
	TreatmentStage  TreatmentStage `json:"treatmentStage"`
	LastSessionDate string         `json:"lastSessionDate,omitempty"` // YYYY-MM-DD
	CreatedAt       time.Time      `json:"created_at"`
}

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	Address         string         `json:"address"`
	Status          Status         `json:"status"`
	TreatmentStage  TreatmentStage `json:"treatmentStage"`
	LastSessionDate string         `json:"lastSessionDate"`
}

// Validate checks required fields and normalizes defaults.
func (r *CreateClientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Status == "" {
		r.Status = StatusActive
	}
	if !validStatus(r.Status) {
		return ErrInvalidStatus
	}
	if r.TreatmentStage == "" {
		r.TreatmentStage = StageFirstContact
	}
	if !validStage(r.TreatmentStage) {
		return ErrInvalidStage
	}
	return nil
}

// UpdateClientRequest carries admin edits. Nil fields are left unchanged.
type UpdateClientRequest struct {
	Name            *string         `json:"name,omitempty"`
	Email           *string         `json:"email,omitempty"`
	Phone           *string         `json:"phone,omitempty"`
	Address         *string         `json:"address,omitempty"`
	Status          *Status         `json:"status,omitempty"`
	TreatmentStage  *TreatmentStage `json:"treatmentStage,omitempty"`
	LastSessionDate *string         `json:"lastSessionDate,omitempty"`
}

// Validate rejects updates that would leave the record invalid.
func (r *UpdateClientRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return ErrInvalidName
	}
	if r.Status != nil && !validStatus(*r.Status) {
		return ErrInvalidStatus
	}
	if r.TreatmentStage != nil && !validStage(*r.TreatmentStage) {
		return ErrInvalidStage
	}
	return nil
}

func validStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

func validStage(s TreatmentStage) bool {
	switch s {
	case StageFirstContact, StageEvaluation, StageInTreatment, StageDischarged:
		return true
	}
	return false
}
