package kanban

import (
	"context"
	"fmt"
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

// PostgresRepository stores kanban tasks in the relational database.
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("kanban: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{pool: db}
}

const taskColumns = `id, title, COALESCE(client_id, ''), status, created_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateTaskRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO kanban_tasks (id, title, client_id, status)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, req.Title, req.ClientID, string(req.Status)).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("kanban: insert failed: %w", err)
	}

	return &Task{
		ID:        id.String(),
		Title:     req.Title,
		ClientID:  req.ClientID,
		Status:    req.Status,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a task.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM kanban_tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

// List returns all tasks ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM kanban_tasks ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("kanban: select failed: %w", err)
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update applies edits and returns the updated row.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpdateTaskRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := `
		UPDATE kanban_tasks SET
			title = COALESCE($2, title),
			client_id = COALESCE(NULLIF($3, ''), client_id),
			status = COALESCE($4, status)
		WHERE id = $1
		RETURNING ` + taskColumns
	return scanTask(r.pool.QueryRow(ctx, query, id, req.Title, derefOrEmpty(req.ClientID), statusArg(req.Status)))
}

// Move sets the task's board column.
func (r *PostgresRepository) Move(ctx context.Context, id string, status Status) (*Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	query := `UPDATE kanban_tasks SET status = $2 WHERE id = $1 RETURNING ` + taskColumns
	return scanTask(r.pool.QueryRow(ctx, query, id, string(status)))
}

// Delete removes a task.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM kanban_tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("kanban: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	var status string
	if err := row.Scan(&t.ID, &t.Title, &t.ClientID, &status, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("kanban: scan failed: %w", err)
	}
	t.Status = Status(status)
	return &t, nil
}

func statusArg(s *Status) *string {
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
