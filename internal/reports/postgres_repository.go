package reports

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

// PostgresRepository stores session reports in the relational database.
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("reports: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{pool: db}
}

const reportColumns = `id, COALESCE(appointment_id, ''), client_id, content, date, observations, evolution, conduct, created_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateReportRequest) (*SessionReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO session_reports (id, appointment_id, client_id, content, date, observations, evolution, conduct)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.AppointmentID,
		req.ClientID,
		req.Content,
		req.Date,
		req.Observations,
		req.Evolution,
		req.Conduct,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("reports: insert failed: %w", err)
	}

	return &SessionReport{
		ID:            id.String(),
		AppointmentID: req.AppointmentID,
		ClientID:      req.ClientID,
		Content:       req.Content,
		Date:          req.Date,
		Observations:  req.Observations,
		Evolution:     req.Evolution,
		Conduct:       req.Conduct,
		CreatedAt:     createdAt,
	}, nil
}

// GetByID fetches a report.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*SessionReport, error) {
	query := `SELECT ` + reportColumns + ` FROM session_reports WHERE id = $1`
	return scanReport(r.pool.QueryRow(ctx, query, id))
}

// List returns all reports, newest session first.
func (r *PostgresRepository) List(ctx context.Context) ([]*SessionReport, error) {
	query := `SELECT ` + reportColumns + ` FROM session_reports ORDER BY date DESC, created_at DESC`
	return r.queryMany(ctx, query)
}

// ListByClient returns a client's reports, newest session first.
func (r *PostgresRepository) ListByClient(ctx context.Context, clientID string) ([]*SessionReport, error) {
	query := `SELECT ` + reportColumns + ` FROM session_reports WHERE client_id = $1 ORDER BY date DESC, created_at DESC`
	return r.queryMany(ctx, query, clientID)
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*SessionReport, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: select failed: %w", err)
	}
	defer rows.Close()

	var out []*SessionReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Update applies edits and returns the updated row.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpdateReportRequest) (*SessionReport, error) {
	query := `
		UPDATE session_reports SET
			content = COALESCE($2, content),
			observations = COALESCE($3, observations),
			evolution = COALESCE($4, evolution),
			conduct = COALESCE($5, conduct)
		WHERE id = $1
		RETURNING ` + reportColumns
	return scanReport(r.pool.QueryRow(ctx, query, id, req.Content, req.Observations, req.Evolution, req.Conduct))
}

// Delete removes a report.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM session_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reports: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReportNotFound
	}
	return nil
}

func scanReport(row pgx.Row) (*SessionReport, error) {
	var rep SessionReport
	if err := row.Scan(
		&rep.ID,
		&rep.AppointmentID,
		&rep.ClientID,
		&rep.Content,
		&rep.Date,
		&rep.Observations,
		&rep.Evolution,
		&rep.Conduct,
		&rep.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("reports: scan failed: %w", err)
	}
	return &rep, nil
}
