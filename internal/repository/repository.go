// Package repository implements the document collections (bookings, contact
// submissions, users and the event catalog) over interchangeable backends.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrStorageUnavailable is returned when the store cannot be opened.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrWrite wraps a failed write transaction.
var ErrWrite = errors.New("write failed")

// ErrRead wraps a failed read transaction.
var ErrRead = errors.New("read failed")

// Store is the document side of the local persistent store. Every write is
// atomic; ids are assigned by the store and strictly increase.
type Store interface {
	// AddBooking stamps the creation time and confirmed status, persists the
	// booking and returns the assigned id.
	AddBooking(ctx context.Context, b model.Booking) (int64, error)
	// ListBookings returns every booking in unspecified order.
	ListBookings(ctx context.Context) ([]model.Booking, error)
	GetBooking(ctx context.Context, id int64) (*model.Booking, error)
	BookingsByEmail(ctx context.Context, email string) ([]model.Booking, error)
	BookingsByEvent(ctx context.Context, event string) ([]model.Booking, error)
	// DeleteBooking removes a booking by id. Deleting an absent id is not an
	// error; deleted reports whether a row was removed.
	DeleteBooking(ctx context.Context, id int64) (deleted bool, err error)

	AddContact(ctx context.Context, c model.ContactSubmission) (int64, error)
	GetContact(ctx context.Context, id int64) (*model.ContactSubmission, error)
	ListContacts(ctx context.Context) ([]model.ContactSubmission, error)
	ContactsByEmail(ctx context.Context, email string) ([]model.ContactSubmission, error)

	// GetUser returns ErrNotFound when no user has the given email.
	GetUser(ctx context.Context, email string) (*model.User, error)
	// PutUser inserts or replaces the user keyed by email.
	PutUser(ctx context.Context, u model.User) error

	CountEvents(ctx context.Context) (int, error)
	SeedEvents(ctx context.Context, events []model.Event) error
	ListEvents(ctx context.Context) ([]model.Event, error)
	EventsByCategory(ctx context.Context, category string) ([]model.Event, error)

	Close() error
}
