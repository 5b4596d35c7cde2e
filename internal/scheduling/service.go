package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/internal/finance"
	"github.com/soraiaclinic/clinic-platform/internal/observability/metrics"
	"github.com/soraiaclinic/clinic-platform/internal/settings"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

var bookingTracer = otel.Tracer("clinic.internal.scheduling")

// ClientInput is the contact info collected by the public booking form.
// Email and phone are validated at the UI layer only.
type ClientInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SlotInput is the chosen date and start time.
type SlotInput struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

// Service executes the booking transaction: resolve-or-create the client,
// create the appointment, create the paired income record. A single writer
// lock closes the window between the availability check and the commit.
type Service struct {
	mu       sync.Mutex
	store    Store
	settings settings.Store
	calc     *Calculator
	links    LinkGenerator
	now      func() time.Time
	logger   *logging.Logger
	metrics  *metrics.BookingMetrics
}

// NewService constructs a booking service.
func NewService(store Store, settingsStore settings.Store, calc *Calculator, links LinkGenerator, logger *logging.Logger, m *metrics.BookingMetrics) *Service {
	if store == nil {
		panic("scheduling: store required")
	}
	if calc == nil {
		panic("scheduling: calculator required")
	}
	if links == nil {
		links = NewRandomLinkGenerator("")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:    store,
		settings: settingsStore,
		calc:     calc,
		links:    links,
		now:      time.Now,
		logger:   logger,
		metrics:  m,
	}
}

// WithClock overrides the time source. Tests use it to pin "today".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AvailableSlots returns the bookable start times for a date.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	s.metrics.ObserveSlotQuery()

	cfg, err := s.currentSettings(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.ListAppointmentsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("scheduling: load day appointments: %w", err)
	}

	return s.calc.Available(date, cfg.DefaultDuration, s.now(), existing), nil
}

// RegisterBooking runs the booking transaction and returns the created
// appointment. On any failure no partial state is left behind.
func (s *Service) RegisterBooking(ctx context.Context, client ClientInput, slot SlotInput) (*appointments.Appointment, error) {
	ctx, span := bookingTracer.Start(ctx, "scheduling.register_booking",
		trace.WithAttributes(
			attribute.String("clinic.booking_date", slot.Date),
			attribute.String("clinic.booking_time", slot.Time),
		))
	defer span.End()

	if strings.TrimSpace(client.Name) == "" {
		return nil, ErrMissingName
	}
	if strings.TrimSpace(slot.Date) == "" || strings.TrimSpace(slot.Time) == "" {
		return nil, ErrMissingDateTime
	}

	cfg, err := s.currentSettings(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	taken, err := s.store.SlotTaken(ctx, slot.Date, slot.Time)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("error", 0)
		return nil, fmt.Errorf("scheduling: slot check: %w", err)
	}
	if taken {
		s.metrics.ObserveBooking("slot_taken", 0)
		return nil, ErrSlotTaken
	}

	booking := &Booking{}

	existing, err := s.store.FindClientByEmail(ctx, client.Email)
	switch {
	case err == nil:
		booking.Appointment = &appointments.Appointment{ClientID: existing.ID}
	case errors.Is(err, clients.ErrClientNotFound):
		booking.NewClient = &clients.Client{
			ID:             uuid.New().String(),
			Name:           client.Name,
			Email:          client.Email,
			Phone:          client.Phone,
			Address:        "Pendente",
			Status:         clients.StatusPending,
			TreatmentStage: clients.StageFirstContact,
			CreatedAt:      s.now().UTC(),
		}
		booking.Appointment = &appointments.Appointment{ClientID: booking.NewClient.ID}
	default:
		span.RecordError(err)
		s.metrics.ObserveBooking("error", 0)
		return nil, fmt.Errorf("scheduling: resolve client: %w", err)
	}

	appt := booking.Appointment
	appt.ID = uuid.New().String()
	appt.Date = slot.Date
	appt.Time = slot.Time
	appt.Type = appointments.TypeClinical
	appt.Status = appointments.StatusScheduled
	appt.MeetLink = s.links.NewLink()
	appt.Price = cfg.DefaultPrice
	appt.Duration = cfg.DefaultDuration
	appt.CreatedAt = s.now().UTC()

	booking.Record = &finance.Record{
		ID:          uuid.New().String(),
		Description: "Agendamento Online - " + client.Name,
		Amount:      cfg.DefaultPrice,
		Type:        finance.TypeIncome,
		Date:        slot.Date,
		Category:    finance.CategoryAppointment,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.CreateBooking(ctx, booking); err != nil {
		span.RecordError(err)
		s.metrics.ObserveBooking("error", 0)
		return nil, err
	}

	s.metrics.ObserveBooking("success", s.now().Sub(start).Seconds())
	s.logger.Info("booking registered",
		"appointment_id", appt.ID,
		"client_id", appt.ClientID,
		"new_client", booking.NewClient != nil,
		"date", appt.Date,
		"time", appt.Time,
	)
	return appt, nil
}

func (s *Service) currentSettings(ctx context.Context) (settings.Settings, error) {
	if s.settings == nil {
		return settings.Defaults(), nil
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("scheduling: load settings: %w", err)
	}
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = settings.Defaults().DefaultDuration
	}
	return cfg, nil
}
