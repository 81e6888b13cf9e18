package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
)

// MemoryStore keeps every collection in process memory. It backs the demo
// API and the degraded, non-persistent mode used when the embedded database
// cannot be opened.
type MemoryStore struct {
	mu            sync.RWMutex
	now           func() time.Time
	bookings      []model.Booking
	contacts      []model.ContactSubmission
	users         map[string]model.User
	events        []model.Event
	nextBookingID int64
	nextContactID int64
}

// NewMemoryStore constructs an empty MemoryStore. A nil clock means
// time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		now:           now,
		users:         make(map[string]model.User),
		nextBookingID: 1,
		nextContactID: 1,
	}
}

var _ Store = (*MemoryStore)(nil)

// AddBooking appends a booking with the next sequential id. Ids are never
// reused, even after a delete.
func (s *MemoryStore) AddBooking(_ context.Context, b model.Booking) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.nextBookingID
	b.Date = s.now().UTC()
	b.Status = model.BookingStatusConfirmed
	s.nextBookingID++
	s.bookings = append(s.bookings, b)
	return b.ID, nil
}

// ListBookings returns bookings in insertion order.
func (s *MemoryStore) ListBookings(_ context.Context) ([]model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Booking(nil), s.bookings...), nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id int64) (*model.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) BookingsByEmail(_ context.Context, email string) ([]model.Booking, error) {
	return s.filterBookings(func(b model.Booking) bool { return b.Email == email }), nil
}

func (s *MemoryStore) BookingsByEvent(_ context.Context, event string) ([]model.Booking, error) {
	return s.filterBookings(func(b model.Booking) bool { return b.Event == event }), nil
}

func (s *MemoryStore) filterBookings(keep func(model.Booking) bool) []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Booking
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s *MemoryStore) DeleteBooking(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bookings {
		if b.ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) AddContact(_ context.Context, c model.ContactSubmission) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextContactID
	c.Date = s.now().UTC()
	s.nextContactID++
	s.contacts = append(s.contacts, c)
	return c.ID, nil
}

func (s *MemoryStore) GetContact(_ context.Context, id int64) (*model.ContactSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.contacts {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListContacts(_ context.Context) ([]model.ContactSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ContactSubmission(nil), s.contacts...), nil
}

func (s *MemoryStore) ContactsByEmail(_ context.Context, email string) ([]model.ContactSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.ContactSubmission
	for _, c := range s.contacts {
		if c.Email == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetUser(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) PutUser(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = normalizeEmail(u.Email)
	s.users[u.Email] = u
	return nil
}

func (s *MemoryStore) CountEvents(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events), nil
}

func (s *MemoryStore) SeedEvents(_ context.Context, events []model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events[:0], events...)
	sort.Slice(s.events, func(i, j int) bool { return s.events[i].ID < s.events[j].ID })
	return nil
}

func (s *MemoryStore) ListEvents(_ context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Event(nil), s.events...), nil
}

func (s *MemoryStore) EventsByCategory(_ context.Context, category string) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Event
	for _, e := range s.events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
