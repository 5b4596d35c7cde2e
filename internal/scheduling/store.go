package scheduling

import (
	"context"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/internal/finance"
)

// Booking bundles the three records a successful online booking creates.
// NewClient is nil when the booking reuses an existing client.
type Booking struct {
	NewClient   *clients.Client
	Appointment *appointments.Appointment
	Record      *finance.Record
}

// Store is the persistence boundary of the booking transaction. CreateBooking
// must apply all of the booking's effects as a unit: either every record is
// visible after it returns, or none are.
type Store interface {
	FindClientByEmail(ctx context.Context, email string) (*clients.Client, error)
	SlotTaken(ctx context.Context, date, timeOfDay string) (bool, error)
	ListAppointmentsByDate(ctx context.Context, date string) ([]*appointments.Appointment, error)
	CreateBooking(ctx context.Context, b *Booking) error
}
