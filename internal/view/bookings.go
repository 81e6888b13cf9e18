// Package view turns store contents into what a page shows: the booking
// list, form prefill and catalog cards.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
)

// Messages shown in place of the booking list.
const (
	NoBookings        = "No bookings found."
	BookingsLoadError = "Error loading bookings. Please try again."
)

const bookedOnLayout = "January 2, 2006 at 03:04 PM"

// BookingRow is one summary row with its cancel action.
type BookingRow struct {
	ID       int64
	Event    string
	Category string
	Name     string
	Email    string
	BookedOn string
	Status   string
}

// BookingList is the rendered booking page body. Message is set instead
// of Rows when there is nothing to list.
type BookingList struct {
	Rows    []BookingRow
	Message string
}

// Empty reports whether the list shows a message instead of rows.
func (l BookingList) Empty() bool { return len(l.Rows) == 0 }

// Bookings sorts bookings most recent first and renders one row each.
// Times are shown in loc; nil means UTC.
func Bookings(bookings []model.Booking, loc *time.Location) BookingList {
	if len(bookings) == 0 {
		return BookingList{Message: NoBookings}
	}
	if loc == nil {
		loc = time.UTC
	}
	sorted := append([]model.Booking(nil), bookings...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	rows := make([]BookingRow, 0, len(sorted))
	for _, b := range sorted {
		rows = append(rows, BookingRow{
			ID:       b.ID,
			Event:    b.Event,
			Category: b.Category,
			Name:     b.Name,
			Email:    b.Email,
			BookedOn: b.Date.In(loc).Format(bookedOnLayout),
			Status:   b.Status,
		})
	}
	return BookingList{Rows: rows}
}

var bookingsTmpl = template.Must(template.New("bookings").Parse(`
{{- if .Empty}}<p>{{.Message}}</p>
{{- else}}{{range .Rows}}
<div class="booking-item">
  <div class="booking-info">
    <h3>{{.Event}}</h3>
    <p><strong>Category:</strong> {{.Category}}</p>
    <p><strong>Name:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Booked on:</strong> {{.BookedOn}}</p>
    <p><strong>Status:</strong> <span class="status">{{.Status}}</span></p>
  </div>
  <div class="booking-actions">
    <button class="btn secondary delete-booking" data-id="{{.ID}}">Cancel</button>
  </div>
</div>
{{- end}}{{end}}`))

// HTML renders the list as markup with every value escaped.
func (l BookingList) HTML() (string, error) {
	var buf bytes.Buffer
	if err := bookingsTmpl.Execute(&buf, l); err != nil {
		return "", fmt.Errorf("render bookings: %w", err)
	}
	return buf.String(), nil
}
