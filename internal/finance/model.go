package finance

import (
	"strings"
	"time"
)

// RecordType distinguishes money coming in from money going out.
type RecordType string

const (
	TypeIncome  RecordType = "income"
	TypeExpense RecordType = "expense"
)

// CategoryAppointment is the category applied to booking income records.
const CategoryAppointment = "Atendimento"

// Record represents a single financial movement.
type Record struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Type        RecordType `json:"type"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateRecordRequest is the request body for creating a record.
type CreateRecordRequest struct {
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Type        RecordType `json:"type"`
	Date        string     `json:"date"`
	Category    string     `json:"category"`
}

// Validate checks required fields and normalizes defaults.
func (r *CreateRecordRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrMissingDescription
	}
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if r.Type != TypeIncome && r.Type != TypeExpense {
		return ErrInvalidType
	}
	if strings.TrimSpace(r.Date) == "" {
		return ErrMissingDate
	}
	if r.Category == "" {
		r.Category = "Outros"
	}
	return nil
}

// Summary aggregates records for the finance page and dashboard charts.
type Summary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

// Summarize folds a record list into totals.
func Summarize(records []*Record) Summary {
	var s Summary
	for _, r := range records {
		switch r.Type {
		case TypeIncome:
			s.TotalIncome += r.Amount
		case TypeExpense:
			s.TotalExpense += r.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}
