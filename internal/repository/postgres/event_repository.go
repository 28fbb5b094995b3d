package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crewline/internal/common"
	"crewline/internal/domain/event"
)

const eventColumns = `id, title, location, venue, starts_at, ends_at, host_count, status, created_at, updated_at`

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, ev event.Event) (*event.Event, error) {
	ev.ID = common.NewUUID()
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO events (id, title, location, venue, starts_at, ends_at, host_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ev.ID, ev.Title, ev.Location, ev.Venue, ev.StartsAt, ev.EndsAt, ev.HostCount, ev.Status, ev.CreatedAt, ev.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create event", err)
	}
	return &ev, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id common.UUID) (*event.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	var ev event.Event
	if err := row.Scan(&ev.ID, &ev.Title, &ev.Location, &ev.Venue, &ev.StartsAt, &ev.EndsAt, &ev.HostCount, &ev.Status, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "event not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load event", err)
	}
	return &ev, nil
}

func (r *EventRepository) List(ctx context.Context, status event.Status) ([]event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY starts_at`
	args := []any{}
	if status != "" {
		query = `SELECT ` + eventColumns + ` FROM events WHERE status = $1 ORDER BY starts_at`
		args = append(args, status)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list events", err)
	}
	defer rows.Close()
	var items []event.Event
	for rows.Next() {
		var ev event.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Location, &ev.Venue, &ev.StartsAt, &ev.EndsAt, &ev.HostCount, &ev.Status, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan event", err)
		}
		items = append(items, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read events", err)
	}
	return items, nil
}
