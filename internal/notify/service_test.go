package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/messages"
)

type mockEmailSender struct {
	sent    []EmailMessage
	callErr error
}

func (m *mockEmailSender) Send(_ context.Context, msg EmailMessage) error {
	if m.callErr != nil {
		return m.callErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func testAppointment() *appointments.Appointment {
	return &appointments.Appointment{
		ID:       "a1",
		Date:     "2026-03-12",
		Time:     "10:00",
		MeetLink: "https://meet.google.com/soraia-abc",
	}
}

func TestNotifyBookingSendsConfirmation(t *testing.T) {
	sender := &mockEmailSender{}
	svc := NewService(sender, messages.NewGenerator(nil, nil, nil, nil), nil).Synchronous()

	svc.NotifyBooking(context.Background(), "maria@example.com", "Maria", testAppointment())

	if len(sender.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.To != "maria@example.com" || msg.ToName != "Maria" {
		t.Errorf("recipient = %q/%q", msg.To, msg.ToName)
	}
	if !strings.Contains(msg.Subject, "2026-03-12") {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Maria") || !strings.Contains(msg.Body, "https://meet.google.com/soraia-abc") {
		t.Errorf("body = %q", msg.Body)
	}
}

func TestNotifyBookingNoSenderIsNoop(t *testing.T) {
	svc := NewService(nil, nil, nil).Synchronous()
	// Must not panic.
	svc.NotifyBooking(context.Background(), "maria@example.com", "Maria", testAppointment())
}

func TestNotifyBookingSkipsEmptyEmail(t *testing.T) {
	sender := &mockEmailSender{}
	svc := NewService(sender, nil, nil).Synchronous()

	svc.NotifyBooking(context.Background(), "", "Maria", testAppointment())
	if len(sender.sent) != 0 {
		t.Fatalf("sent = %d, want 0", len(sender.sent))
	}
}

func TestNotifyBookingSendFailureIsSwallowed(t *testing.T) {
	sender := &mockEmailSender{callErr: errors.New("smtp down")}
	svc := NewService(sender, nil, nil).Synchronous()

	// Failure is logged only; caller sees nothing.
	svc.NotifyBooking(context.Background(), "maria@example.com", "Maria", testAppointment())
}

func TestSendRetention(t *testing.T) {
	sender := &mockEmailSender{}
	svc := NewService(sender, nil, nil).Synchronous()

	if err := svc.SendRetention(context.Background(), "maria@example.com", "Maria", "Olá Maria"); err != nil {
		t.Fatalf("SendRetention: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].Body != "Olá Maria" {
		t.Fatalf("sent = %+v", sender.sent)
	}

	empty := NewService(nil, nil, nil)
	if err := empty.SendRetention(context.Background(), "maria@example.com", "Maria", "x"); err == nil {
		t.Fatal("expected error without sender")
	}
}
