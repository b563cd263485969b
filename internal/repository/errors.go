// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors.
package repository

import "errors"

// ErrUsernameExists is returned when registering with a username that is
// already taken. Handlers translate this into an HTTP 400 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when registering with an email address that
// is already taken. Handlers translate this into an HTTP 400 response.
var ErrEmailExists = errors.New("email already exists")

// ErrEventNotFound is returned when an event lookup by id matches no row.
var ErrEventNotFound = errors.New("event not found")

// ErrEventFull is returned by the registration repository when an event
// has a capacity and registered_count has already reached it. Handlers
// translate this into an HTTP 400 response.
var ErrEventFull = errors.New("event full")

// ErrRegistrationNotFound is returned when a registration does not exist
// under the given event.
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrContentNotFound is returned when a content lookup by id matches no row.
var ErrContentNotFound = errors.New("content not found")
