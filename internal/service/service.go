// Package service implements the domain operations (validation and
// orchestration) between the controllers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/Shivanand-hulikatti/event-ease/internal/repository"
)

// ValidationError lists required fields that were empty. It is returned
// before any store call is made.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// required returns a ValidationError naming every blank value, in order.
func required(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// BookingService orchestrates booking, contact and user operations.
type BookingService struct {
	store repository.Store
}

// NewBookingService constructs a BookingService over store.
func NewBookingService(store repository.Store) *BookingService {
	return &BookingService{store: store}
}

// AddBooking validates the request and persists a confirmed booking.
func (s *BookingService) AddBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	if err := required(
		"category", req.Category,
		"event", req.Event,
		"name", req.Name,
		"email", req.Email,
	); err != nil {
		return nil, err
	}

	id, err := s.store.AddBooking(ctx, model.Booking{
		Category: strings.TrimSpace(req.Category),
		Event:    strings.TrimSpace(req.Event),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
	})
	if err != nil {
		return nil, fmt.Errorf("add booking: %w", err)
	}
	b, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read back booking %d: %w", id, err)
	}
	return b, nil
}

// ListBookings returns all bookings in store order.
func (s *BookingService) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return s.store.ListBookings(ctx)
}

// BookingsFor returns the bookings made with email.
func (s *BookingService) BookingsFor(ctx context.Context, email string) ([]model.Booking, error) {
	return s.store.BookingsByEmail(ctx, strings.TrimSpace(email))
}

// BookingsForEvent returns the bookings for the named event.
func (s *BookingService) BookingsForEvent(ctx context.Context, event string) ([]model.Booking, error) {
	return s.store.BookingsByEvent(ctx, strings.TrimSpace(event))
}

// DeleteBooking removes a booking. Deleting an absent id succeeds with
// deleted == false.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) (deleted bool, err error) {
	deleted, err = s.store.DeleteBooking(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete booking %d: %w", id, err)
	}
	return deleted, nil
}

// AddContact validates and appends a contact submission.
func (s *BookingService) AddContact(ctx context.Context, req model.CreateContactRequest) (*model.ContactSubmission, error) {
	if err := required(
		"name", req.Name,
		"email", req.Email,
		"message", req.Message,
	); err != nil {
		return nil, err
	}

	id, err := s.store.AddContact(ctx, model.ContactSubmission{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: req.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("add contact: %w", err)
	}
	c, err := s.store.GetContact(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read back contact %d: %w", id, err)
	}
	return c, nil
}

// ListContacts returns all contact submissions.
func (s *BookingService) ListContacts(ctx context.Context) ([]model.ContactSubmission, error) {
	return s.store.ListContacts(ctx)
}

// ContactsFrom returns the contact submissions sent with email.
func (s *BookingService) ContactsFrom(ctx context.Context, email string) ([]model.ContactSubmission, error) {
	return s.store.ContactsByEmail(ctx, strings.TrimSpace(email))
}

// GetUser looks a user up by email. It returns repository.ErrNotFound for
// unknown emails.
func (s *BookingService) GetUser(ctx context.Context, email string) (*model.User, error) {
	return s.store.GetUser(ctx, email)
}

// PutUser saves a user, replacing any record with the same email.
func (s *BookingService) PutUser(ctx context.Context, u model.User) error {
	if err := required("email", u.Email); err != nil {
		return err
	}
	return s.store.PutUser(ctx, u)
}

// Events returns the whole catalog.
func (s *BookingService) Events(ctx context.Context) ([]model.Event, error) {
	return s.store.ListEvents(ctx)
}

// EventsIn returns the catalog events of one category.
func (s *BookingService) EventsIn(ctx context.Context, category string) ([]model.Event, error) {
	return s.store.EventsByCategory(ctx, category)
}
