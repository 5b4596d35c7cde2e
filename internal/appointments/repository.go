package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage
type Repository interface {
	Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error)
	Put(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context) ([]*Appointment, error)
	ListByDate(ctx context.Context, date string) ([]*Appointment, error)
	// SlotTaken reports whether a non-cancelled appointment occupies (date, time).
	SlotTaken(ctx context.Context, date, timeOfDay string) (bool, error)
	// SetStatus transitions a scheduled appointment to completed or cancelled.
	SetStatus(ctx context.Context, id string, status Status) (*Appointment, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository implements Repository with in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	appts map[string]*Appointment
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		appts: make(map[string]*Appointment),
	}
}

// Create creates a new appointment
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	appt := &Appointment{
		ID:        uuid.New().String(),
		ClientID:  req.ClientID,
		Date:      req.Date,
		Time:      req.Time,
		Type:      req.Type,
		Status:    StatusScheduled,
		MeetLink:  req.MeetLink,
		Price:     req.Price,
		Duration:  req.Duration,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.appts[appt.ID] = appt
	r.mu.Unlock()

	return appt, nil
}

// Put stores a fully-formed appointment record.
func (r *InMemoryRepository) Put(ctx context.Context, appt *Appointment) error {
	if appt == nil || appt.ID == "" {
		return ErrAppointmentNotFound
	}
	cp := *appt
	r.mu.Lock()
	r.appts[cp.ID] = &cp
	r.mu.Unlock()
	return nil
}

// GetByID retrieves an appointment by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	cp := *appt
	return &cp, nil
}

// List returns all appointments ordered by date then time
func (r *InMemoryRepository) List(ctx context.Context) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*Appointment) bool { return true }), nil
}

// ListByDate returns appointments on a calendar day
func (r *InMemoryRepository) ListByDate(ctx context.Context, date string) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a *Appointment) bool { return a.Date == date }), nil
}

// SlotTaken reports whether a non-cancelled appointment occupies the slot
func (r *InMemoryRepository) SlotTaken(ctx context.Context, date, timeOfDay string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.appts {
		if a.Date == date && a.Time == timeOfDay && a.Status != StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

// SetStatus transitions a scheduled appointment
func (r *InMemoryRepository) SetStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	if appt.Status != StatusScheduled {
		return nil, ErrAlreadyFinal
	}
	appt.Status = status
	cp := *appt
	return &cp, nil
}

// Delete removes an appointment
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appts[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(r.appts, id)
	return nil
}

// collect copies matching appointments sorted by (date, time). Callers hold the lock.
func (r *InMemoryRepository) collect(match func(*Appointment) bool) []*Appointment {
	out := make([]*Appointment, 0)
	for _, a := range r.appts {
		if match(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}
