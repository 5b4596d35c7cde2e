package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/clients"
	"github.com/soraiaclinic/clinic-platform/internal/finance"
)

const dateLayout = "2006-01-02"

// ClientStats counts clients by status.
type ClientStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Pending  int `json:"pending"`
}

// MonthlyFlow is one month of income vs expense.
type MonthlyFlow struct {
	Month   string  `json:"month"` // YYYY-MM
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Stats is the admin dashboard snapshot.
type Stats struct {
	Clients          ClientStats                 `json:"clients"`
	TodayCount       int                         `json:"todayAppointments"`
	Today            []*appointments.Appointment `json:"today"`
	Upcoming         []*appointments.Appointment `json:"upcoming"`
	MonthIncome      float64                     `json:"monthIncome"`
	MonthExpense     float64                     `json:"monthExpense"`
	MonthlyFlow      []MonthlyFlow               `json:"monthlyFlow"`
	PendingFirstStep int                         `json:"pendingFirstContact"`
}

// Service aggregates the dashboard snapshot from the domain repositories.
type Service struct {
	clients clients.Repository
	appts   appointments.Repository
	finance finance.Repository
	loc     *time.Location
	now     func() time.Time
}

// NewService creates a dashboard service. loc defaults to UTC.
func NewService(c clients.Repository, a appointments.Repository, f finance.Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{clients: c, appts: a, finance: f, loc: loc, now: time.Now}
}

// WithClock overrides the time source for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Snapshot builds the dashboard stats.
func (s *Service) Snapshot(ctx context.Context) (*Stats, error) {
	today := s.now().In(s.loc).Format(dateLayout)

	stats := &Stats{
		Today:    []*appointments.Appointment{},
		Upcoming: []*appointments.Appointment{},
	}

	allClients, err := s.clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list clients: %w", err)
	}
	stats.Clients.Total = len(allClients)
	for _, c := range allClients {
		switch c.Status {
		case clients.StatusActive:
			stats.Clients.Active++
		case clients.StatusInactive:
			stats.Clients.Inactive++
		case clients.StatusPending:
			stats.Clients.Pending++
		}
		if c.TreatmentStage == clients.StageFirstContact {
			stats.PendingFirstStep++
		}
	}

	allAppts, err := s.appts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list appointments: %w", err)
	}
	for _, a := range allAppts {
		if a.Status == appointments.StatusCancelled {
			continue
		}
		switch {
		case a.Date == today:
			stats.Today = append(stats.Today, a)
		case a.Date > today && a.Status == appointments.StatusScheduled:
			stats.Upcoming = append(stats.Upcoming, a)
		}
	}
	stats.TodayCount = len(stats.Today)

	records, err := s.finance.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list financial records: %w", err)
	}
	currentMonth := today[:7]
	flowByMonth := map[string]*MonthlyFlow{}
	for _, rec := range records {
		if len(rec.Date) < 7 {
			continue
		}
		month := rec.Date[:7]
		flow, ok := flowByMonth[month]
		if !ok {
			flow = &MonthlyFlow{Month: month}
			flowByMonth[month] = flow
		}
		switch rec.Type {
		case finance.TypeIncome:
			flow.Income += rec.Amount
		case finance.TypeExpense:
			flow.Expense += rec.Amount
		}
		if month == currentMonth {
			if rec.Type == finance.TypeIncome {
				stats.MonthIncome += rec.Amount
			} else {
				stats.MonthExpense += rec.Amount
			}
		}
	}

	stats.MonthlyFlow = make([]MonthlyFlow, 0, len(flowByMonth))
	for _, flow := range flowByMonth {
		stats.MonthlyFlow = append(stats.MonthlyFlow, *flow)
	}
	sort.Slice(stats.MonthlyFlow, func(i, j int) bool {
		return strings.Compare(stats.MonthlyFlow[i].Month, stats.MonthlyFlow[j].Month) < 0
	})

	return stats, nil
}
