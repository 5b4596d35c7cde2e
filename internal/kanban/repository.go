package kanban

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for kanban task storage
type Repository interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*Task, error)
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	Update(ctx context.Context, id string, req *UpdateTaskRequest) (*Task, error)
	// Move sets the task's board column.
	Move(ctx context.Context, id string, status Status) (*Task, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository implements Repository with in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		tasks: make(map[string]*Task),
	}
}

// Create adds a card to the board
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateTaskRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	task := &Task{
		ID:        uuid.New().String(),
		Title:     req.Title,
		ClientID:  req.ClientID,
		Status:    req.Status,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.tasks[task.ID] = task
	r.mu.Unlock()

	return task, nil
}

// GetByID retrieves a task by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

// List returns all tasks ordered by creation time
func (r *InMemoryRepository) List(ctx context.Context) ([]*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Update applies edits to a task
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateTaskRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.ClientID != nil {
		task.ClientID = *req.ClientID
	}
	if req.Status != nil {
		task.Status = *req.Status
	}

	cp := *task
	return &cp, nil
}

// Move sets the task's board column
func (r *InMemoryRepository) Move(ctx context.Context, id string, status Status) (*Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	task.Status = status
	cp := *task
	return &cp, nil
}

// Delete removes a task
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}
