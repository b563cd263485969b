package repository

import (
	"context"
	"database/sql"

	"github.com/etkinlikhub/event-platform/internal/model"
)

// EventRepo provides CRUD operations for events. All timestamp fields are
// stored in UTC; event_date ordering drives both public listings.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = "id,title,description,location,event_date,capacity,registered_count,status,author_id,created_at,updated_at"

type rowScanner interface{ Scan(dest ...any) error }

func scanEvent(s rowScanner) (model.Event, error) {
	var (
		e        model.Event
		desc     sql.NullString
		loc      sql.NullString
		capacity sql.NullInt64
		author   sql.NullInt64
	)
	err := s.Scan(&e.ID, &e.Title, &desc, &loc, &e.EventDate, &capacity,
		&e.RegisteredCount, &e.Status, &author, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Event{}, err
	}
	if desc.Valid {
		e.Description = &desc.String
	}
	if loc.Valid {
		e.Location = &loc.String
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		e.Capacity = &c
	}
	if author.Valid {
		a := uint64(author.Int64)
		e.AuthorID = &a
	}
	return e, nil
}

// List returns every event, newest scheduled date first.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events ORDER BY event_date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// ListActive returns active events whose date is still in the future,
// soonest first.
func (r *EventRepo) ListActive(ctx context.Context) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE status=? AND event_date >= NOW() ORDER BY event_date ASC",
		model.EventStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID fetches a single event. Returns ErrEventNotFound when absent.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// Create inserts an event and returns its ID. A nil capacity stores NULL
// (unlimited); registered_count starts at the column default of 0.
func (r *EventRepo) Create(ctx context.Context, e model.Event) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO events (title, description, location, event_date, capacity, status, author_id)
		 VALUES (?,?,?,?,?,?,?)`,
		e.Title, e.Description, e.Location, e.EventDate, e.Capacity, e.Status, e.AuthorID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update replaces the mutable columns of an event. The caller is expected
// to have performed the ownership check beforehand.
func (r *EventRepo) Update(ctx context.Context, id uint64, e model.Event) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE events SET title=?, description=?, location=?, event_date=?,
		 capacity=?, status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`,
		e.Title, e.Description, e.Location, e.EventDate, e.Capacity, e.Status, id)
	return err
}

// Delete removes an event row. Registrations of the event are left in
// place, matching the behaviour the rest of the system expects.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM events WHERE id=?", id)
	return err
}
