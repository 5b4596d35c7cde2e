package reports

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for session report storage
type Repository interface {
	Create(ctx context.Context, req *CreateReportRequest) (*SessionReport, error)
	GetByID(ctx context.Context, id string) (*SessionReport, error)
	List(ctx context.Context) ([]*SessionReport, error)
	// ListByClient returns a client's reports, newest session first.
	ListByClient(ctx context.Context, clientID string) ([]*SessionReport, error)
	Update(ctx context.Context, id string, req *UpdateReportRequest) (*SessionReport, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository implements Repository with in-memory storage
type InMemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]*SessionReport
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		reports: make(map[string]*SessionReport),
	}
}

// Create records a new session report
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateReportRequest) (*SessionReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	report := &SessionReport{
		ID:            uuid.New().String(),
		AppointmentID: req.AppointmentID,
		ClientID:      req.ClientID,
		Content:       req.Content,
		Date:          req.Date,
		Observations:  req.Observations,
		Evolution:     req.Evolution,
		Conduct:       req.Conduct,
		CreatedAt:     time.Now().UTC(),
	}

	r.mu.Lock()
	r.reports[report.ID] = report
	r.mu.Unlock()

	return report, nil
}

// GetByID retrieves a report by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*SessionReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	cp := *report
	return &cp, nil
}

// List returns all reports, newest session first
func (r *InMemoryRepository) List(ctx context.Context) ([]*SessionReport, error) {
	return r.collect(func(*SessionReport) bool { return true }), nil
}

// ListByClient returns a client's reports, newest session first
func (r *InMemoryRepository) ListByClient(ctx context.Context, clientID string) ([]*SessionReport, error) {
	return r.collect(func(rep *SessionReport) bool { return rep.ClientID == clientID }), nil
}

func (r *InMemoryRepository) collect(keep func(*SessionReport) bool) []*SessionReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*SessionReport, 0)
	for _, rep := range r.reports {
		if keep(rep) {
			cp := *rep
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Update applies edits to a report
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateReportRequest) (*SessionReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}

	if req.Content != nil {
		report.Content = *req.Content
	}
	if req.Observations != nil {
		report.Observations = *req.Observations
	}
	if req.Evolution != nil {
		report.Evolution = *req.Evolution
	}
	if req.Conduct != nil {
		report.Conduct = *req.Conduct
	}

	cp := *report
	return &cp, nil
}

// Delete removes a report
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reports[id]; !ok {
		return ErrReportNotFound
	}
	delete(r.reports, id)
	return nil
}
