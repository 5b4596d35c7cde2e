package finance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

func TestSummarize(t *testing.T) {
	records := []*Record{
		{Type: TypeIncome, Amount: 250},
		{Type: TypeIncome, Amount: 450},
		{Type: TypeExpense, Amount: 120.5},
	}
	s := Summarize(records)
	if s.TotalIncome != 700 {
		t.Fatalf("expected income 700, got %v", s.TotalIncome)
	}
	if s.TotalExpense != 120.5 {
		t.Fatalf("expected expense 120.5, got %v", s.TotalExpense)
	}
	if s.Balance != 579.5 {
		t.Fatalf("expected balance 579.5, got %v", s.Balance)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateRecordRequest
		want error
	}{
		{"missing description", CreateRecordRequest{Amount: 10, Type: TypeIncome, Date: "2025-01-10"}, ErrMissingDescription},
		{"zero amount", CreateRecordRequest{Description: "x", Type: TypeIncome, Date: "2025-01-10"}, ErrInvalidAmount},
		{"bad type", CreateRecordRequest{Description: "x", Amount: 10, Type: "transfer", Date: "2025-01-10"}, ErrInvalidType},
		{"missing date", CreateRecordRequest{Description: "x", Amount: 10, Type: TypeExpense}, ErrMissingDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := repo.Create(ctx, &tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDefaultCategory(t *testing.T) {
	repo := NewInMemoryRepository()
	rec, err := repo.Create(context.Background(), &CreateRecordRequest{
		Description: "Material de escritório",
		Amount:      80,
		Type:        TypeExpense,
		Date:        "2025-01-10",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Category != "Outros" {
		t.Fatalf("expected default category Outros, got %q", rec.Category)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, logging.Default())

	seed := []CreateRecordRequest{
		{Description: "Agendamento Online - João Silva", Amount: 250, Type: TypeIncome, Date: "2025-01-10", Category: CategoryAppointment},
		{Description: "Aluguel", Amount: 1200, Type: TypeExpense, Date: "2025-01-05", Category: "Fixo"},
	}
	for i := range seed {
		if _, err := repo.Create(context.Background(), &seed[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/finance/summary", nil)
	w := httptest.NewRecorder()
	handler.Summary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var s Summary
	if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Balance != -950 {
		t.Fatalf("expected balance -950, got %v", s.Balance)
	}
}

func TestCreateEndpointRejectsBadType(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	body, _ := json.Marshal(CreateRecordRequest{Description: "x", Amount: 10, Type: "loan", Date: "2025-01-10"})
	req := httptest.NewRequest(http.MethodPost, "/admin/finance", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
