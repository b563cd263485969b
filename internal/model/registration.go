package model

import "time"

// EventRegistration represents a row of the `event_registrations` table.
// Registrations capture attendee contact details as free text; they are
// not linked to the registering user account.
//
// Fields:
//  ID           – primary key identifier.
//  EventID      – event this registration belongs to.
//  Name         – attendee name.
//  Email        – attendee email.
//  Phone        – optional phone number.
//  Notes        – optional free-form notes.
//  RegisteredAt – timestamp of registration.
type EventRegistration struct {
	ID           uint64    `json:"id"`
	EventID      uint64    `json:"event_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone"`
	Notes        *string   `json:"notes"`
	RegisteredAt time.Time `json:"registered_at"`
}
