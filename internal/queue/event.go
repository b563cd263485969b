// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationCreatedEvent is published when a signup for an event
// succeeds. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type RegistrationCreatedEvent struct {
	RegistrationID uint64 `json:"registration_id"`
	EventID        uint64 `json:"event_id"`
	EventTitle     string `json:"event_title"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	RegisteredAt   string `json:"registered_at"`
}
