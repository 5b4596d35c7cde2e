package clients

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepositoryWithDB(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO clients").
		WithArgs(pgxmock.AnyArg(), "João Silva", "joao@email.com", "2199999999", "Rua das Flores, 123", "active", "In Treatment", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	client, err := repo.Create(context.Background(), &CreateClientRequest{
		Name:           "João Silva",
		Email:          "joao@email.com",
		Phone:          "2199999999",
		Address:        "Rua das Flores, 123",
		Status:         StatusActive,
		TreatmentStage: StageInTreatment,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if client.ID == "" || !client.CreatedAt.Equal(now) {
		t.Fatalf("unexpected client %+v", client)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresFindByEmailNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepositoryWithDB(mock)

	mock.ExpectQuery("SELECT (.+) FROM clients WHERE lower\\(email\\) = lower\\(\\$1\\)").
		WithArgs("ghost@email.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "phone", "address", "status", "treatment_stage", "last_session_date", "created_at",
		}))

	_, err = repo.FindByEmail(context.Background(), "ghost@email.com")
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestPostgresDeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepositoryWithDB(mock)

	mock.ExpectExec("DELETE FROM clients").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}
