package handler

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/etkinlikhub/event-platform/internal/model"
	"github.com/etkinlikhub/event-platform/internal/queue"
	"github.com/etkinlikhub/event-platform/internal/repository"
	"github.com/etkinlikhub/event-platform/internal/utils"
)

// In-memory store fakes implementing the handler store interfaces with
// the same sentinel errors and ordering guarantees as the repository
// package.

type fakeUserStore struct {
	mu    sync.Mutex
	seq   uint64
	users map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, username, email, password, role string, cost int) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return 0, repository.ErrUsernameExists
		}
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.seq++
	s.users[s.seq] = model.User{
		ID: s.seq, Username: username, Email: email,
		PasswordHash: hash, Role: role, CreatedAt: time.Now().UTC(),
	}
	return s.seq, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return model.User{}, sql.ErrNoRows
}

// addAdmin seeds an admin account directly, mirroring database.SeedAdmin.
func (s *fakeUserStore) addAdmin(username, email, password string) uint64 {
	id, _ := s.Create(context.Background(), username, email, password, model.RoleAdmin, 4)
	return id
}

type fakeEventStore struct {
	mu     sync.Mutex
	seq    uint64
	events map[uint64]model.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[uint64]model.Event)}
}

func (s *fakeEventStore) List(_ context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.After(out[j].EventDate) })
	return out, nil
}

func (s *fakeEventStore) ListActive(_ context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	out := make([]model.Event, 0)
	for _, e := range s.events {
		if e.Status == model.EventStatusActive && !e.EventDate.Before(now) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (s *fakeEventStore) GetByID(_ context.Context, id uint64) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return model.Event{}, repository.ErrEventNotFound
	}
	return e, nil
}

func (s *fakeEventStore) Create(_ context.Context, e model.Event) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	e.ID = s.seq
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt
	s.events[e.ID] = e
	return e.ID, nil
}

func (s *fakeEventStore) Update(_ context.Context, id uint64, e model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.events[id]
	if !ok {
		return repository.ErrEventNotFound
	}
	existing.Title = e.Title
	existing.Description = e.Description
	existing.Location = e.Location
	existing.EventDate = e.EventDate
	existing.Capacity = e.Capacity
	existing.Status = e.Status
	existing.UpdatedAt = time.Now().UTC()
	s.events[id] = existing
	return nil
}

func (s *fakeEventStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	return nil
}

// fakeRegistrationStore shares the event map so it can enforce capacity
// and maintain registered_count the way the transactional repository does.
type fakeRegistrationStore struct {
	mu     sync.Mutex
	seq    uint64
	events *fakeEventStore
	regs   map[uint64]model.EventRegistration
}

func newFakeRegistrationStore(events *fakeEventStore) *fakeRegistrationStore {
	return &fakeRegistrationStore{events: events, regs: make(map[uint64]model.EventRegistration)}
}

func (s *fakeRegistrationStore) Create(_ context.Context, eventID uint64, reg model.EventRegistration) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events.mu.Lock()
	defer s.events.mu.Unlock()

	e, ok := s.events.events[eventID]
	if !ok {
		return 0, repository.ErrEventNotFound
	}
	if e.Capacity != nil && e.RegisteredCount >= *e.Capacity {
		return 0, repository.ErrEventFull
	}
	s.seq++
	reg.ID = s.seq
	reg.EventID = eventID
	reg.RegisteredAt = time.Now().UTC()
	s.regs[reg.ID] = reg
	e.RegisteredCount++
	s.events.events[eventID] = e
	return reg.ID, nil
}

func (s *fakeRegistrationStore) ListByEvent(_ context.Context, eventID uint64) ([]model.EventRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.EventRegistration, 0)
	for _, r := range s.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeRegistrationStore) Delete(_ context.Context, eventID, registrationID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.regs[registrationID]
	if !ok || r.EventID != eventID {
		return repository.ErrRegistrationNotFound
	}
	delete(s.regs, registrationID)

	s.events.mu.Lock()
	defer s.events.mu.Unlock()
	if e, ok := s.events.events[eventID]; ok {
		if e.RegisteredCount > 0 {
			e.RegisteredCount--
		}
		s.events.events[eventID] = e
	}
	return nil
}

// capturePublisher records published events instead of talking to a broker.
type capturePublisher struct {
	mu     sync.Mutex
	events []queue.RegistrationCreatedEvent
}

func (p *capturePublisher) PublishRegistrationCreated(_ context.Context, ev queue.RegistrationCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}
