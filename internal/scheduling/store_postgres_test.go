package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/internal/finance"
)

func newBooking() *Booking {
	return &Booking{
		NewClient: &clients.Client{
			ID: "c1", Name: "Maria", Email: "maria@example.com",
			Address: "Pendente", Status: clients.StatusPending, TreatmentStage: clients.StageFirstContact,
		},
		Appointment: &appointments.Appointment{
			ID: "a1", ClientID: "c1", Date: "2026-03-12", Time: "10:00",
			Type: appointments.TypeClinical, Status: appointments.StatusScheduled,
			MeetLink: "https://meet.google.com/soraia-test", Price: 250, Duration: 50,
		},
		Record: &finance.Record{
			ID: "f1", Description: "Agendamento Online - Maria", Amount: 250,
			Type: finance.TypeIncome, Date: "2026-03-12", Category: finance.CategoryAppointment,
		},
	}
}

func TestPostgresStoreCreateBookingCommits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO clients").
		WithArgs("c1", "Maria", "maria@example.com", "", "Pendente", "pending", "First Contact").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs("a1", "c1", "2026-03-12", "10:00", "Clinical", "scheduled", "https://meet.google.com/soraia-test", 250.0, 50).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO financial_records").
		WithArgs("f1", "Agendamento Online - Maria", 250.0, "income", "2026-03-12", "Atendimento").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	store := NewPostgresStoreWithDB(mock)
	if err := store.CreateBooking(context.Background(), newBooking()); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStoreCreateBookingExistingClientSkipsInsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	b := newBooking()
	b.NewClient = nil

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs("a1", "c1", "2026-03-12", "10:00", "Clinical", "scheduled", "https://meet.google.com/soraia-test", 250.0, 50).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO financial_records").
		WithArgs("f1", "Agendamento Online - Maria", 250.0, "income", "2026-03-12", "Atendimento").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	store := NewPostgresStoreWithDB(mock)
	if err := store.CreateBooking(context.Background(), b); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStoreCreateBookingRollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO clients").
		WithArgs("c1", "Maria", "maria@example.com", "", "Pendente", "pending", "First Contact").
		WillReturnError(errors.New("unique violation"))
	mock.ExpectRollback()

	store := NewPostgresStoreWithDB(mock)
	if err := store.CreateBooking(context.Background(), newBooking()); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPostgresStoreSlotTaken(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("2026-03-12", "10:00").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	store := NewPostgresStoreWithDB(mock)
	taken, err := store.SlotTaken(context.Background(), "2026-03-12", "10:00")
	if err != nil {
		t.Fatalf("SlotTaken: %v", err)
	}
	if !taken {
		t.Fatal("expected slot taken")
	}
}

func TestPostgresStoreFindClientByEmailNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM clients").
		WithArgs("missing@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "phone", "address", "status", "treatment_stage", "coalesce", "created_at"}))

	store := NewPostgresStoreWithDB(mock)
	_, err = store.FindClientByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, clients.ErrClientNotFound) {
		t.Fatalf("err = %v, want ErrClientNotFound", err)
	}
}
