package history

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrInvalidAction = errors.New("invalid history action")

type Repository interface {
	Append(ctx context.Context, bookingID, action, actor string, meta map[string]interface{}) (*Event, error)
	ListForRange(ctx context.Context, filter ListFilter) ([]Event, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Append(ctx context.Context, bookingID, action, actor string, meta map[string]interface{}) (*Event, error) {
	if !ValidAction(action) {
		return nil, ErrInvalidAction
	}

	if meta == nil {
		meta = map[string]interface{}{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO booking_events (id, booking_id, action, actor, meta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, booking_id, action, actor, meta, created_at
	`

	var event Event
	err = r.db.GetContext(ctx, &event, query,
		uuid.New().String(), bookingID, action, actor, metaJSON)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *repository) ListForRange(ctx context.Context, filter ListFilter) ([]Event, error) {
	query := `
		SELECT id, booking_id, action, actor, meta, created_at
		FROM booking_events
		WHERE ($1::date IS NULL OR created_at >= $1::date)
		  AND ($2::date IS NULL OR created_at < $2::date + 1)
		  AND ($3::text IS NULL OR action = $3)
		  AND ($4::text IS NULL OR actor = $4)
		ORDER BY created_at DESC
	`

	events := []Event{}
	err := r.db.SelectContext(ctx, &events, query,
		nullIfEmpty(filter.From), nullIfEmpty(filter.To),
		nullIfEmpty(filter.Action), nullIfEmpty(filter.Actor))
	if err != nil {
		return nil, err
	}

	return events, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
