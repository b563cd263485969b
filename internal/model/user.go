package model

import "time"

// Role values stored in users.role. Admins bypass ownership checks and
// exclusively manage event registrations; regular users own the events
// and contents they create. Roles are fixed at registration time.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a row of the `users` table. The password hash is never
// serialized; auth handlers build their own response shapes.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – "user" or "admin", fixed at creation.
//  CreatedAt    – timestamp of registration.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
