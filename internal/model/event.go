package model

import "time"

// Event status values. Active events with a future date appear in the
// public "active" listing; inactive ones only in the full listing.
const (
	EventStatusActive   = "active"
	EventStatusInactive = "inactive"
)

// Event represents a row of the `events` table.
//
// Capacity is nil for unlimited events. RegisteredCount is maintained by
// the registration repository inside the same transaction as the
// registration insert/delete, so it never exceeds Capacity and never goes
// negative. AuthorID is nil on legacy rows created before ownership
// tracking; such events are mutable by admins only.
type Event struct {
	ID              uint64    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Location        *string   `json:"location"`
	EventDate       time.Time `json:"event_date"`
	Capacity        *int      `json:"capacity"`
	RegisteredCount int       `json:"registered_count"`
	Status          string    `json:"status"`
	AuthorID        *uint64   `json:"author_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
