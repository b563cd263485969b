package handler

import (
	"context"

	"github.com/etkinlikhub/event-platform/internal/model"
	"github.com/etkinlikhub/event-platform/internal/queue"
	"github.com/etkinlikhub/event-platform/internal/repository"
)

// Store interfaces consumed by the handlers. The repository package
// provides the concrete implementations; tests substitute in-memory
// fakes. Sentinel errors from the repository package are part of the
// contract (ErrEventFull, ErrEventNotFound, ...).

// UserStore persists and looks up user accounts.
type UserStore interface {
	Create(ctx context.Context, username, email, password, role string, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// EventStore persists events.
type EventStore interface {
	List(ctx context.Context) ([]model.Event, error)
	ListActive(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id uint64) (model.Event, error)
	Create(ctx context.Context, e model.Event) (uint64, error)
	Update(ctx context.Context, id uint64, e model.Event) error
	Delete(ctx context.Context, id uint64) error
}

// RegistrationStore persists event registrations and maintains the
// parent event's registered_count.
type RegistrationStore interface {
	Create(ctx context.Context, eventID uint64, reg model.EventRegistration) (uint64, error)
	ListByEvent(ctx context.Context, eventID uint64) ([]model.EventRegistration, error)
	Delete(ctx context.Context, eventID, registrationID uint64) error
}

// ContentStore persists content items.
type ContentStore interface {
	List(ctx context.Context, f repository.ContentFilter) ([]model.Content, error)
	GetByID(ctx context.Context, id uint64) (model.Content, error)
	Create(ctx context.Context, c model.Content) (uint64, error)
	Update(ctx context.Context, id uint64, c model.Content) error
	Delete(ctx context.Context, id uint64) error
}

// RegistrationPublisher fans a successful registration out to the message
// broker. Publishing is best effort; handlers log failures and move on.
type RegistrationPublisher interface {
	PublishRegistrationCreated(ctx context.Context, ev queue.RegistrationCreatedEvent) error
}
