package finance

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

// PostgresRepository stores financial records in the relational database.
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("finance: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{pool: db}
}

const recordColumns = `id, description, amount, type, date, category, created_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateRecordRequest) (*Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO financial_records (id, description, amount, type, date, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.Description,
		req.Amount,
		string(req.Type),
		req.Date,
		req.Category,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("finance: insert failed: %w", err)
	}

	return &Record{
		ID:          id.String(),
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Date:        req.Date,
		Category:    req.Category,
		CreatedAt:   createdAt,
	}, nil
}

// Put stores a fully-formed record.
func (r *PostgresRepository) Put(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return ErrRecordNotFound
	}
	query := `
		INSERT INTO financial_records (id, description, amount, type, date, category)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.Description,
		rec.Amount,
		string(rec.Type),
		rec.Date,
		rec.Category,
	); err != nil {
		return fmt.Errorf("finance: put failed: %w", err)
	}
	return nil
}

// GetByID fetches a record.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM financial_records WHERE id = $1`
	return scanRecord(r.pool.QueryRow(ctx, query, id))
}

// List returns all records, latest date first.
func (r *PostgresRepository) List(ctx context.Context) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM financial_records ORDER BY date DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("finance: select failed: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a record.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM financial_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("finance: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var typ string
	if err := row.Scan(
		&rec.ID,
		&rec.Description,
		&rec.Amount,
		&typ,
		&rec.Date,
		&rec.Category,
		&rec.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("finance: scan failed: %w", err)
	}
	rec.Type = RecordType(typ)
	return &rec, nil
}
