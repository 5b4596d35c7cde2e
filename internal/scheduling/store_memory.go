package scheduling

import (
	"context"
	"fmt"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/internal/finance"
)

// MemoryStore implements Store over the in-memory domain repositories. The
// booking service serializes writers, so applying the three inserts in
// sequence is observed as a unit.
type MemoryStore struct {
	clients *clients.InMemoryRepository
	appts   *appointments.InMemoryRepository
	finance *finance.InMemoryRepository
}

// NewMemoryStore wires the in-memory repositories into a booking store.
func NewMemoryStore(c *clients.InMemoryRepository, a *appointments.InMemoryRepository, f *finance.InMemoryRepository) *MemoryStore {
	return &MemoryStore{clients: c, appts: a, finance: f}
}

// FindClientByEmail matches case-insensitively.
func (s *MemoryStore) FindClientByEmail(ctx context.Context, email string) (*clients.Client, error) {
	return s.clients.FindByEmail(ctx, email)
}

// SlotTaken reports whether a non-cancelled appointment occupies the slot.
func (s *MemoryStore) SlotTaken(ctx context.Context, date, timeOfDay string) (bool, error) {
	return s.appts.SlotTaken(ctx, date, timeOfDay)
}

// ListAppointmentsByDate returns the appointments on a calendar day.
func (s *MemoryStore) ListAppointmentsByDate(ctx context.Context, date string) ([]*appointments.Appointment, error) {
	return s.appts.ListByDate(ctx, date)
}

// CreateBooking applies the booking's records.
func (s *MemoryStore) CreateBooking(ctx context.Context, b *Booking) error {
	if b == nil || b.Appointment == nil || b.Record == nil {
		return fmt.Errorf("scheduling: incomplete booking")
	}
	if b.NewClient != nil {
		if err := s.clients.Put(ctx, b.NewClient); err != nil {
			return fmt.Errorf("scheduling: store client: %w", err)
		}
	}
	if err := s.appts.Put(ctx, b.Appointment); err != nil {
		return fmt.Errorf("scheduling: store appointment: %w", err)
	}
	if err := s.finance.Put(ctx, b.Record); err != nil {
		return fmt.Errorf("scheduling: store financial record: %w", err)
	}
	return nil
}
