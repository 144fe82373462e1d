package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/justicechristophersam-ai/spaflow/internal/db"
)

var (
	ErrNotFound = errors.New("booking not found")
	// ErrSlotTaken surfaces the partial unique index on
	// (preferred_date, preferred_time, service_type) for active rows.
	ErrSlotTaken = errors.New("slot already taken")
)

const bookingColumns = `
	id, name, whatsapp, email, service_type,
	to_char(preferred_date, 'YYYY-MM-DD') AS preferred_date,
	to_char(preferred_time, 'HH24:MI') AS preferred_time,
	status, notes, created_at
`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (id, name, whatsapp, email, service_type, preferred_date, preferred_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', $8)
		RETURNING ` + bookingColumns

	id := b.ID
	if id == "" {
		id = uuid.New().String()
	}

	var created Booking
	err := r.db.GetContext(ctx, &created, query,
		id, b.Name, b.WhatsApp, b.Email, b.ServiceType, b.PreferredDate, b.PreferredTime, b.Notes)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) ListForRange(ctx context.Context, from, to, service, status string) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE ($1::date IS NULL OR preferred_date >= $1::date)
		  AND ($2::date IS NULL OR preferred_date <= $2::date)
		  AND ($3::text IS NULL OR service_type = $3)
		  AND ($4::text IS NULL OR status = $4)
		ORDER BY preferred_date, preferred_time
	`

	bookings := []Booking{}
	err := r.db.SelectContext(ctx, &bookings, query,
		nullIfEmpty(from), nullIfEmpty(to), nullIfEmpty(service), nullIfEmpty(status))
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) Counts(ctx context.Context, from, to string) (*Counts, error) {
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'pending') AS pending,
		       COUNT(*) FILTER (WHERE status = 'confirmed') AS confirmed,
		       COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
		       COUNT(*) FILTER (WHERE preferred_date = CURRENT_DATE) AS today,
		       COUNT(*) FILTER (WHERE preferred_date >= date_trunc('week', CURRENT_DATE)::date
		                          AND preferred_date < date_trunc('week', CURRENT_DATE)::date + 7) AS this_week
		FROM bookings
		WHERE ($1::date IS NULL OR preferred_date >= $1::date)
		  AND ($2::date IS NULL OR preferred_date <= $2::date)
	`

	var counts Counts
	err := r.db.GetContext(ctx, &counts, query, nullIfEmpty(from), nullIfEmpty(to))
	if err != nil {
		return nil, err
	}

	return &counts, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE bookings SET status = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Re-activating into an occupied slot.
			return ErrSlotTaken
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) BookedTimes(ctx context.Context, date, service string) ([]string, error) {
	query := `
		SELECT to_char(preferred_time, 'HH24:MI')
		FROM bookings
		WHERE preferred_date = $1 AND service_type = $2 AND status <> 'cancelled'
		ORDER BY preferred_time
	`

	times := []string{}
	err := r.db.SelectContext(ctx, &times, query, date, service)
	if err != nil {
		return nil, err
	}

	return times, nil
}

func (r *repository) SlotTaken(ctx context.Context, date, service, timeOfDay string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE preferred_date = $1 AND service_type = $2 AND preferred_time = $3
			  AND status <> 'cancelled'
		)
	`

	return db.Exists(ctx, r.db, query, date, service, timeOfDay)
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
