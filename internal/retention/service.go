package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/internal/messages"
	"github.com/soraiaclinic/clinic-platform/pkg/logging"
)

const dateLayout = "2006-01-02"

// Candidate is a client flagged for re-engagement outreach.
type Candidate struct {
	Client    *clients.Client `json:"client"`
	DaysSince int             `json:"daysSinceLastSession"`
	Reason    string          `json:"reason"`
}

// Service finds clients who stopped attending and drafts outreach messages
// for them.
type Service struct {
	clients      clients.Repository
	generator    *messages.Generator
	inactiveDays int
	now          func() time.Time
	logger       *logging.Logger
}

// NewService creates a retention service. inactiveDays <= 0 defaults to 60.
func NewService(repo clients.Repository, generator *messages.Generator, inactiveDays int, logger *logging.Logger) *Service {
	if inactiveDays <= 0 {
		inactiveDays = 60
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		clients:      repo,
		generator:    generator,
		inactiveDays: inactiveDays,
		now:          time.Now,
		logger:       logger,
	}
}

// WithClock overrides the time source for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Candidates returns the clients needing outreach: anyone marked inactive,
// plus anyone whose last session is older than the inactivity threshold.
func (s *Service) Candidates(ctx context.Context) ([]*Candidate, error) {
	all, err := s.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("retention: list clients: %w", err)
	}

	out := make([]*Candidate, 0)
	for _, c := range all {
		days := s.daysSinceLastSession(c)
		switch {
		case c.Status == clients.StatusInactive:
			out = append(out, &Candidate{Client: c, DaysSince: days, Reason: "inactive"})
		case days > s.inactiveDays:
			out = append(out, &Candidate{Client: c, DaysSince: days, Reason: "no_recent_session"})
		}
	}
	return out, nil
}

// daysSinceLastSession returns -1 when the client has no recorded session or
// the recorded date does not parse.
func (s *Service) daysSinceLastSession(c *clients.Client) int {
	if c.LastSessionDate == "" {
		return -1
	}
	last, err := time.Parse(dateLayout, c.LastSessionDate)
	if err != nil {
		return -1
	}
	return int(s.now().Sub(last).Hours() / 24)
}

// DraftMessage generates the re-engagement text for one client. The generator
// guarantees usable text even when the LLM is down.
func (s *Service) DraftMessage(ctx context.Context, clientID string) (string, bool, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return "", false, err
	}
	return s.generator.Generate(ctx, messages.Request{
		Type:        messages.TypeRetention,
		ClientName:  client.Name,
		LastSession: client.LastSessionDate,
	})
}
