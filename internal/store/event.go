package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/churchhub/apiserver/types"
)

// EventRepository handles persistence for calendar events in PostgreSQL.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, event_type, start_time, end_time, location, created_by, created_at`

func (r *EventRepository) Get(ctx context.Context, id int) (types.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *EventRepository) List(ctx context.Context) ([]types.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id`
	return r.queryEvents(ctx, query)
}

func (r *EventRepository) ListUpcoming(ctx context.Context, limit int) ([]types.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE start_time > now()
		ORDER BY start_time, id
		LIMIT $1`
	return r.queryEvents(ctx, query, limit)
}

func (r *EventRepository) Create(ctx context.Context, event types.Event) (types.Event, error) {
	const query = `
		INSERT INTO events (title, description, event_type, start_time, end_time, location, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, created_at`
	err := r.db.QueryRowContext(
		ctx,
		query,
		event.Title,
		event.Description,
		event.EventType,
		event.StartTime,
		event.EndTime,
		event.Location,
		event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return types.Event{}, err
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, id int, upd types.EventUpdate) (types.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Event{}, err
	}
	defer tx.Rollback()

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	event, err := scanEvent(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.Event{}, err
	}

	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.EventType != nil {
		event.EventType = *upd.EventType
	}
	if upd.StartTime != nil {
		event.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		event.EndTime = *upd.EndTime
	}
	if upd.Location != nil {
		event.Location = *upd.Location
	}

	const updateQuery = `
		UPDATE events
		SET title = $1, description = $2, event_type = $3, start_time = $4, end_time = $5, location = $6
		WHERE id = $7`
	if _, err := tx.ExecContext(
		ctx,
		updateQuery,
		event.Title,
		event.Description,
		event.EventType,
		event.StartTime,
		event.EndTime,
		event.Location,
		id,
	); err != nil {
		return types.Event{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Event{}, err
	}
	return event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]types.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]types.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanEvent(row rowScanner) (types.Event, error) {
	var event types.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventType,
		&event.StartTime,
		&event.EndTime,
		&event.Location,
		&event.CreatedBy,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Event{}, ErrNotFound
		}
		return types.Event{}, err
	}
	return event, nil
}
