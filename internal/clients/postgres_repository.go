package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores clients in the relational database.
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("clients: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{pool: db}
}

const clientColumns = `id, name, email, phone, address, status, treatment_stage, COALESCE(last_session_date, ''), created_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO clients (id, name, email, phone, address, status, treatment_stage, last_session_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.Address,
		string(req.Status),
		string(req.TreatmentStage),
		req.LastSessionDate,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("clients: insert failed: %w", err)
	}

	return &Client{
		ID:              id.String(),
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		Status:          req.Status,
		TreatmentStage:  req.TreatmentStage,
		LastSessionDate: req.LastSessionDate,
		CreatedAt:       createdAt,
	}, nil
}

// GetByID fetches a client.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return scanClient(r.pool.QueryRow(ctx, query, id))
}

// FindByEmail matches case-insensitively.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Client, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrClientNotFound
	}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE lower(email) = lower($1)`
	return scanClient(r.pool.QueryRow(ctx, query, email))
}

// List returns all clients ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("clients: select failed: %w", err)
	}
	defer rows.Close()

	var out []*Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update applies admin edits and returns the updated row.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpdateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE clients SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			address = COALESCE($5, address),
			status = COALESCE($6, status),
			treatment_stage = COALESCE($7, treatment_stage),
			last_session_date = COALESCE(NULLIF($8, ''), last_session_date)
		WHERE id = $1
		RETURNING ` + clientColumns
	return scanClient(r.pool.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.Address,
		statusArg(req.Status),
		stageArg(req.TreatmentStage),
		derefOrEmpty(req.LastSessionDate),
	))
}

// Delete removes a client.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("clients: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

// TouchLastSession stamps the last session date.
func (r *PostgresRepository) TouchLastSession(ctx context.Context, id string, date string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE clients SET last_session_date = $2 WHERE id = $1`, id, date)
	if err != nil {
		return fmt.Errorf("clients: touch last session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	var status, stage string
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Address,
		&status,
		&stage,
		&c.LastSessionDate,
		&c.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("clients: scan failed: %w", err)
	}
	c.Status = Status(status)
	c.TreatmentStage = TreatmentStage(stage)
	return &c, nil
}

func statusArg(s *Status) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func stageArg(s *TreatmentStage) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
