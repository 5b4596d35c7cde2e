package appointments

import (
	"context"
	"errors"
	"testing"
)

func seedAppointment(t *testing.T, repo *InMemoryRepository, date, timeOfDay string) *Appointment {
	t.Helper()
	appt, err := repo.Create(context.Background(), &CreateAppointmentRequest{
		ClientID: "client-1",
		Date:     date,
		Time:     timeOfDay,
		Price:    250,
		Duration: 50,
	})
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return appt
}

func TestSlotTaken(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	seedAppointment(t, repo, "2025-01-10", "09:00")

	taken, err := repo.SlotTaken(ctx, "2025-01-10", "09:00")
	if err != nil {
		t.Fatalf("slot taken: %v", err)
	}
	if !taken {
		t.Fatal("expected slot to be taken")
	}

	free, err := repo.SlotTaken(ctx, "2025-01-10", "10:00")
	if err != nil {
		t.Fatalf("slot taken: %v", err)
	}
	if free {
		t.Fatal("expected slot to be free")
	}
}

func TestCancelledSlotBecomesFree(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	appt := seedAppointment(t, repo, "2025-01-10", "09:00")

	if _, err := repo.SetStatus(ctx, appt.ID, StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	taken, err := repo.SlotTaken(ctx, "2025-01-10", "09:00")
	if err != nil {
		t.Fatalf("slot taken: %v", err)
	}
	if taken {
		t.Fatal("cancelled appointment must free the slot")
	}
}

func TestStatusTransitionsAreTerminal(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	appt := seedAppointment(t, repo, "2025-01-10", "09:00")

	if _, err := repo.SetStatus(ctx, appt.ID, StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := repo.SetStatus(ctx, appt.ID, StatusCancelled); !errors.Is(err, ErrAlreadyFinal) {
		t.Fatalf("expected ErrAlreadyFinal, got %v", err)
	}
	if _, err := repo.SetStatus(ctx, "missing", StatusCompleted); !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestListByDateOrdersByTime(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	seedAppointment(t, repo, "2025-01-10", "14:00")
	seedAppointment(t, repo, "2025-01-10", "08:00")
	seedAppointment(t, repo, "2025-01-11", "09:00")

	list, err := repo.ListByDate(ctx, "2025-01-10")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(list))
	}
	if list[0].Time != "08:00" || list[1].Time != "14:00" {
		t.Fatalf("expected chronological order, got %s then %s", list[0].Time, list[1].Time)
	}
}

func TestCreateValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &CreateAppointmentRequest{Date: "2025-01-10", Time: "09:00"}); !errors.Is(err, ErrMissingClient) {
		t.Fatalf("expected ErrMissingClient, got %v", err)
	}
	if _, err := repo.Create(ctx, &CreateAppointmentRequest{ClientID: "c1", Date: "2025-01-10"}); !errors.Is(err, ErrMissingDateTime) {
		t.Fatalf("expected ErrMissingDateTime, got %v", err)
	}
	if _, err := repo.Create(ctx, &CreateAppointmentRequest{ClientID: "c1", Date: "2025-01-10", Time: "09:00", Type: "Massage"}); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}
