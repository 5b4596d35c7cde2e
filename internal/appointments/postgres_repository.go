package appointments

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

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	pool DB
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithDB allows injecting a mock database for testing.
func NewPostgresRepositoryWithDB(db DB) *PostgresRepository {
	return &PostgresRepository{pool: db}
}

const apptColumns = `id, client_id, date, time, type, status, COALESCE(meet_link, ''), price, duration, created_at`

// Create inserts a new scheduled appointment.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO appointments (id, client_id, date, time, type, status, meet_link, price, duration)
		VALUES ($1, $2, $3, $4, $5, 'scheduled', NULLIF($6, ''), $7, $8)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.ClientID,
		req.Date,
		req.Time,
		string(req.Type),
		req.MeetLink,
		req.Price,
		req.Duration,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	return &Appointment{
		ID:        id.String(),
		ClientID:  req.ClientID,
		Date:      req.Date,
		Time:      req.Time,
		Type:      req.Type,
		Status:    StatusScheduled,
		MeetLink:  req.MeetLink,
		Price:     req.Price,
		Duration:  req.Duration,
		CreatedAt: createdAt,
	}, nil
}

// Put stores a fully-formed appointment record.
func (r *PostgresRepository) Put(ctx context.Context, appt *Appointment) error {
	if appt == nil || appt.ID == "" {
		return ErrAppointmentNotFound
	}
	query := `
		INSERT INTO appointments (id, client_id, date, time, type, status, meet_link, price, duration)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
	`
	if _, err := r.pool.Exec(ctx, query,
		appt.ID,
		appt.ClientID,
		appt.Date,
		appt.Time,
		string(appt.Type),
		string(appt.Status),
		appt.MeetLink,
		appt.Price,
		appt.Duration,
	); err != nil {
		return fmt.Errorf("appointments: put failed: %w", err)
	}
	return nil
}

// GetByID fetches an appointment.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	query := `SELECT ` + apptColumns + ` FROM appointments WHERE id = $1`
	return scanAppointment(r.pool.QueryRow(ctx, query, id))
}

// List returns all appointments ordered by date then time.
func (r *PostgresRepository) List(ctx context.Context) ([]*Appointment, error) {
	query := `SELECT ` + apptColumns + ` FROM appointments ORDER BY date, time`
	return r.queryMany(ctx, query)
}

// ListByDate returns appointments on a calendar day.
func (r *PostgresRepository) ListByDate(ctx context.Context, date string) ([]*Appointment, error) {
	query := `SELECT ` + apptColumns + ` FROM appointments WHERE date = $1 ORDER BY time`
	return r.queryMany(ctx, query, date)
}

// SlotTaken reports whether a non-cancelled appointment occupies the slot.
func (r *PostgresRepository) SlotTaken(ctx context.Context, date, timeOfDay string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM appointments WHERE date = $1 AND time = $2 AND status <> 'cancelled')`
	var taken bool
	if err := r.pool.QueryRow(ctx, query, date, timeOfDay).Scan(&taken); err != nil {
		return false, fmt.Errorf("appointments: slot check failed: %w", err)
	}
	return taken, nil
}

// SetStatus transitions a scheduled appointment.
func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	query := `
		UPDATE appointments SET status = $2
		WHERE id = $1 AND status = 'scheduled'
		RETURNING ` + apptColumns
	appt, err := scanAppointment(r.pool.QueryRow(ctx, query, id, string(status)))
	if err == nil {
		return appt, nil
	}
	if err != ErrAppointmentNotFound {
		return nil, err
	}
	// Distinguish a missing row from an already-final one.
	var exists bool
	if scanErr := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM appointments WHERE id = $1)`, id).Scan(&exists); scanErr != nil {
		return nil, fmt.Errorf("appointments: status check failed: %w", scanErr)
	}
	if exists {
		return nil, ErrAlreadyFinal
	}
	return nil, ErrAppointmentNotFound
}

// Delete removes an appointment.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("appointments: delete failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, appt)
	}
	return out, rows.Err()
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var typ, status string
	if err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.Date,
		&a.Time,
		&typ,
		&status,
		&a.MeetLink,
		&a.Price,
		&a.Duration,
		&a.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: scan failed: %w", err)
	}
	a.Type = Type(typ)
	a.Status = Status(status)
	return &a, nil
}
