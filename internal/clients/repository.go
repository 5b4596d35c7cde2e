package clients

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for client storage
type Repository interface {
	Create(ctx context.Context, req *CreateClientRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	// FindByEmail matches case-insensitively; returns ErrClientNotFound on miss.
	FindByEmail(ctx context.Context, email string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, id string, req *UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, id string) error
	// TouchLastSession stamps lastSessionDate when an appointment completes.
	TouchLastSession(ctx context.Context, id string, date string) error
}

// InMemoryRepository implements Repository with in-memory storage
type InMemoryRepository struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		clients: make(map[string]*Client),
	}
}

// Create creates a new client in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		Status:          req.Status,
		TreatmentStage:  req.TreatmentStage,
		LastSessionDate: req.LastSessionDate,
		CreatedAt:       time.Now().UTC(),
	}

	r.mu.Lock()
	r.clients[client.ID] = client
	r.mu.Unlock()

	return client, nil
}

// GetByID retrieves a client by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}
	cp := *client
	return &cp, nil
}

// FindByEmail matches a client by case-insensitive email
func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*Client, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return nil, ErrClientNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.clients {
		if strings.ToLower(c.Email) == needle {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrClientNotFound
}

// List returns all clients ordered by creation time
func (r *InMemoryRepository) List(ctx context.Context) ([]*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Update applies admin edits to a client
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpdateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	if req.TreatmentStage != nil {
		client.TreatmentStage = *req.TreatmentStage
	}
	if req.LastSessionDate != nil {
		client.LastSessionDate = *req.LastSessionDate
	}

	cp := *client
	return &cp, nil
}

// Delete removes a client
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

// TouchLastSession stamps the last session date
func (r *InMemoryRepository) TouchLastSession(ctx context.Context, id string, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return ErrClientNotFound
	}
	client.LastSessionDate = date
	return nil
}

// Put stores a fully-formed client record. The scheduling store uses it to
// insert the client it builds during the booking transaction.
func (r *InMemoryRepository) Put(ctx context.Context, c *Client) error {
	if c == nil || c.ID == "" {
		return ErrClientNotFound
	}
	cp := *c
	r.mu.Lock()
	r.clients[cp.ID] = &cp
	r.mu.Unlock()
	return nil
}
