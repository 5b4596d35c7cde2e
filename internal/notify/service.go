package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/messages"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

// Service emails clients about their bookings. Delivery runs off the request
// path; failures are logged and never block a booking.
type Service struct {
	email     EmailSender
	generator *messages.Generator
	timeout   time.Duration
	logger    *logging.Logger

	// async controls whether sends run in a goroutine. Tests disable it.
	async bool
}

// NewService creates a notification service. generator may be nil, in which
// case a plain confirmation body is used.
func NewService(email EmailSender, generator *messages.Generator, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:     email,
		generator: generator,
		timeout:   30 * time.Second,
		logger:    logger,
		async:     true,
	}
}

// Synchronous makes sends run inline. Tests use it to assert on delivery.
func (s *Service) Synchronous() *Service {
	s.async = false
	return s
}

// NotifyBooking emails the confirmation for a freshly created appointment.
// It satisfies the booking handler's ConfirmationNotifier.
func (s *Service) NotifyBooking(_ context.Context, email, name string, appt *appointments.Appointment) {
	if s.email == nil || email == "" || appt == nil {
		return
	}

	send := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		body := s.confirmationText(ctx, name, appt)
		msg := EmailMessage{
			To:      email,
			ToName:  name,
			Subject: fmt.Sprintf("Confirmação de consulta - %s às %s", appt.Date, appt.Time),
			Body:    body,
		}
		if err := s.email.Send(ctx, msg); err != nil {
			s.logger.Error("booking confirmation email failed", "error", err, "appointment_id", appt.ID)
			return
		}
		s.logger.Info("booking confirmation email sent", "appointment_id", appt.ID)
	}

	if s.async {
		go send()
		return
	}
	send()
}

// SendRetention emails a re-engagement message to a client.
func (s *Service) SendRetention(ctx context.Context, email, name, text string) error {
	if s.email == nil {
		return fmt.Errorf("notify: email sender not configured")
	}
	return s.email.Send(ctx, EmailMessage{
		To:      email,
		ToName:  name,
		Subject: "Sentimos sua falta",
		Body:    text,
	})
}

func (s *Service) confirmationText(ctx context.Context, name string, appt *appointments.Appointment) string {
	req := messages.Request{
		Type:       messages.TypeConfirmation,
		ClientName: name,
		Date:       appt.Date,
		Time:       appt.Time,
		MeetLink:   appt.MeetLink,
	}
	if s.generator == nil {
		return req.Fallback()
	}
	text, _, err := s.generator.Generate(ctx, req)
	if err != nil || text == "" {
		return req.Fallback()
	}
	return text
}
