package repository

import (
	"context"
	"database/sql"

	"github.com/etkinlikhub/event-platform/internal/model"
)

// RegistrationRepo provides persistence for event registrations and keeps
// events.registered_count consistent with the registration rows. Both the
// capacity-checked insert and the delete run inside a single transaction
// with the event row locked, so the counter can neither exceed capacity
// under concurrent signups nor drift when a delete partially fails.
type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

// Create inserts a registration for the event and increments its
// registered_count. The event row is read FOR UPDATE so that two
// concurrent registrations near the capacity boundary serialize on the
// row lock; the loser of the race re-reads a count that already includes
// the winner. Returns ErrEventNotFound or ErrEventFull accordingly.
func (r *RegistrationRepo) Create(ctx context.Context, eventID uint64, reg model.EventRegistration) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		capacity sql.NullInt64
		count    int
	)
	err = tx.QueryRowContext(ctx,
		"SELECT capacity, registered_count FROM events WHERE id=? FOR UPDATE",
		eventID).Scan(&capacity, &count)
	if err == sql.ErrNoRows {
		return 0, ErrEventNotFound
	}
	if err != nil {
		return 0, err
	}
	if capacity.Valid && int64(count) >= capacity.Int64 {
		return 0, ErrEventFull
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO event_registrations (event_id, name, email, phone, notes) VALUES (?,?,?,?,?)",
		eventID, reg.Name, reg.Email, reg.Phone, reg.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE events SET registered_count = registered_count + 1 WHERE id=?", eventID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByEvent returns all registrations for an event, newest first.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.EventRegistration, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,event_id,name,email,phone,notes,registered_at
		 FROM event_registrations WHERE event_id=? ORDER BY registered_at DESC, id DESC`,
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]model.EventRegistration, 0)
	for rows.Next() {
		var (
			reg   model.EventRegistration
			phone sql.NullString
			notes sql.NullString
		)
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Email,
			&phone, &notes, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		if phone.Valid {
			reg.Phone = &phone.String
		}
		if notes.Valid {
			reg.Notes = &notes.String
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// Delete removes a registration that belongs to the given event and
// decrements the event's registered_count in the same transaction. The
// GREATEST guard keeps the counter from ever going below zero even if it
// was already inconsistent. Returns ErrRegistrationNotFound when the
// registration does not exist under that event.
func (r *RegistrationRepo) Delete(ctx context.Context, eventID, registrationID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists uint64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM event_registrations WHERE id=? AND event_id=? FOR UPDATE",
		registrationID, eventID).Scan(&exists)
	if err == sql.ErrNoRows {
		return ErrRegistrationNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM event_registrations WHERE id=?", registrationID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE events SET registered_count = GREATEST(registered_count - 1, 0) WHERE id=?",
		eventID); err != nil {
		return err
	}
	return tx.Commit()
}
