// Package model defines the core domain types for the event booking system.
package model

import "time"

// BookingStatusConfirmed is the only status a booking is ever written with.
const BookingStatusConfirmed = "confirmed"

// Event is a static catalog entry. Events are seeded once and never edited.
type Event struct {
	ID          int64     `json:"id" db:"id" yaml:"id"`
	Title       string    `json:"title" db:"title" yaml:"title"`
	Category    string    `json:"category" db:"category" yaml:"category"`
	Description string    `json:"description" db:"description" yaml:"description"`
	Date        time.Time `json:"date" db:"date" yaml:"date"`
	Time        string    `json:"time" db:"time" yaml:"time"`
	Venue       string    `json:"venue" db:"venue" yaml:"venue"`
	Price       string    `json:"price" db:"price" yaml:"price"`
	ImageURL    string    `json:"image" db:"image_url" yaml:"image"`
}

// Booking is a user's reservation for a named event within a category.
// Bookings are created and deleted, never updated in place.
type Booking struct {
	ID       int64     `json:"id" db:"id"`
	Category string    `json:"category" db:"category"`
	Event    string    `json:"event" db:"event"`
	Name     string    `json:"name" db:"name"`
	Email    string    `json:"email" db:"email"`
	Date     time.Time `json:"date" db:"date"`
	Status   string    `json:"status" db:"status"`
}

// ContactSubmission is an append-only message from the contact form.
type ContactSubmission struct {
	ID      int64     `json:"id" db:"id"`
	Name    string    `json:"name" db:"name"`
	Email   string    `json:"email" db:"email"`
	Message string    `json:"message" db:"message"`
	Date    time.Time `json:"date" db:"date"`
}

// User is a locally registered account keyed by lowercase email.
type User struct {
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"passwordHash" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Theme is the persisted colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// AccountDetails is the prefill blob for name/email form fields.
type AccountDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PendingBooking is the short-lived record handed from the booking form to
// the payment page.
type PendingBooking struct {
	Category string `json:"category"`
	Event    string `json:"event"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ID       int64  `json:"id"`
}

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	Category string `json:"category"`
	Event    string `json:"event"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// CreateContactRequest is the payload for a contact form submission.
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges a request that returns no resource.
type OKResponse struct {
	OK bool `json:"ok"`
}

// HealthResponse is returned by the health probe.
type HealthResponse struct {
	OK     bool    `json:"ok"`
	Uptime float64 `json:"uptime"`
}
