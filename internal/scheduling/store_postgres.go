package scheduling

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soraiaclinic/clinic-platform/internal/appointments"
	"github.com/soraiaclinic/clinic-platform/internal/clients"
)

// TxDB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
type TxDB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore implements Store on the relational database. CreateBooking
// runs inside a single transaction, and the partial unique index on
// (date, time) for non-cancelled appointments backs the slot invariant even
// if a competing writer slips past the advisory check.
type PostgresStore struct {
	db TxDB
}

// NewPostgresStore creates a store backed by pgxpool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	if pool == nil {
		panic("scheduling: pgx pool required")
	}
	return &PostgresStore{db: pool}
}

// NewPostgresStoreWithDB allows injecting a mock database for testing.
func NewPostgresStoreWithDB(db TxDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindClientByEmail matches case-insensitively.
func (s *PostgresStore) FindClientByEmail(ctx context.Context, email string) (*clients.Client, error) {
	query := `
		SELECT id, name, email, phone, address, status, treatment_stage, COALESCE(last_session_date, ''), created_at
		FROM clients WHERE lower(email) = lower($1)
	`
	var c clients.Client
	var status, stage string
	err := s.db.QueryRow(ctx, query, email).Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &status, &stage, &c.LastSessionDate, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, clients.ErrClientNotFound
		}
		return nil, fmt.Errorf("scheduling: find client: %w", err)
	}
	c.Status = clients.Status(status)
	c.TreatmentStage = clients.TreatmentStage(stage)
	return &c, nil
}

// SlotTaken reports whether a non-cancelled appointment occupies the slot.
func (s *PostgresStore) SlotTaken(ctx context.Context, date, timeOfDay string) (bool, error) {
	var taken bool
	query := `SELECT EXISTS(SELECT 1 FROM appointments WHERE date = $1 AND time = $2 AND status <> 'cancelled')`
	if err := s.db.QueryRow(ctx, query, date, timeOfDay).Scan(&taken); err != nil {
		return false, fmt.Errorf("scheduling: slot check: %w", err)
	}
	return taken, nil
}

// ListAppointmentsByDate returns the appointments on a calendar day.
func (s *PostgresStore) ListAppointmentsByDate(ctx context.Context, date string) ([]*appointments.Appointment, error) {
	query := `
		SELECT id, client_id, date, time, type, status, COALESCE(meet_link, ''), price, duration, created_at
		FROM appointments WHERE date = $1 ORDER BY time
	`
	rows, err := s.db.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list appointments: %w", err)
	}
	defer rows.Close()

	var out []*appointments.Appointment
	for rows.Next() {
		var a appointments.Appointment
		var typ, status string
		if err := rows.Scan(&a.ID, &a.ClientID, &a.Date, &a.Time, &typ, &status, &a.MeetLink, &a.Price, &a.Duration, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scheduling: scan appointment: %w", err)
		}
		a.Type = appointments.Type(typ)
		a.Status = appointments.Status(status)
		out = append(out, &a)
	}
	return out, rows.Err()
}

// CreateBooking inserts the booking's records in one transaction.
func (s *PostgresStore) CreateBooking(ctx context.Context, b *Booking) error {
	if b == nil || b.Appointment == nil || b.Record == nil {
		return fmt.Errorf("scheduling: incomplete booking")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("scheduling: begin booking tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if b.NewClient != nil {
		c := b.NewClient
		if _, err := tx.Exec(ctx, `
			INSERT INTO clients (id, name, email, phone, address, status, treatment_stage)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, c.ID, c.Name, c.Email, c.Phone, c.Address, string(c.Status), string(c.TreatmentStage)); err != nil {
			return fmt.Errorf("scheduling: insert client: %w", err)
		}
	}

	a := b.Appointment
	if _, err := tx.Exec(ctx, `
		INSERT INTO appointments (id, client_id, date, time, type, status, meet_link, price, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, a.ID, a.ClientID, a.Date, a.Time, string(a.Type), string(a.Status), a.MeetLink, a.Price, a.Duration); err != nil {
		return fmt.Errorf("scheduling: insert appointment: %w", err)
	}

	rec := b.Record
	if _, err := tx.Exec(ctx, `
		INSERT INTO financial_records (id, description, amount, type, date, category)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.Description, rec.Amount, string(rec.Type), rec.Date, rec.Category); err != nil {
		return fmt.Errorf("scheduling: insert financial record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("scheduling: commit booking: %w", err)
	}
	return nil
}
