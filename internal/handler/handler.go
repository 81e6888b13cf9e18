// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses of the demo API to and from the service layer.
package handler

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/Shivanand-hulikatti/event-ease/internal/service"
	"github.com/go-chi/chi/v5"
)

const (
	msgMissingFields = "Missing required fields"
	msgNotFound      = "Not found"
)

// APIHandler holds all HTTP handlers for the bookings/contacts demo API.
type APIHandler struct {
	svc     *service.BookingService
	started time.Time
	now     func() time.Time
	log     *log.Logger
}

// NewAPIHandler constructs an APIHandler. Uptime is measured from now().
func NewAPIHandler(svc *service.BookingService, logger *log.Logger, now func() time.Time) *APIHandler {
	if now == nil {
		now = time.Now
	}
	return &APIHandler{svc: svc, started: now(), now: now, log: logger}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}

// Health handles GET /api/health. Uptime is in seconds, two decimals.
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	up := h.now().Sub(h.started).Seconds()
	writeJSON(w, http.StatusOK, model.HealthResponse{
		OK:     true,
		Uptime: math.Round(up*100) / 100,
	})
}

// ListBookings handles GET /api/bookings, optionally narrowed by ?email= or
// ?event=.
func (h *APIHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	var (
		bookings []model.Booking
		err      error
	)
	switch q := r.URL.Query(); {
	case q.Get("email") != "":
		bookings, err = h.svc.BookingsFor(r.Context(), q.Get("email"))
	case q.Get("event") != "":
		bookings, err = h.svc.BookingsForEvent(r.Context(), q.Get("event"))
	default:
		bookings, err = h.svc.ListBookings(r.Context())
	}
	if err != nil {
		h.log.Printf("list bookings: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// CreateBooking handles POST /api/bookings. A body that is not JSON counts
// as having no fields.
func (h *APIHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	booking, err := h.svc.AddBooking(r.Context(), req)
	if err != nil {
		if service.IsValidation(err) {
			writeError(w, http.StatusBadRequest, msgMissingFields)
			return
		}
		h.log.Printf("create booking: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// DeleteBooking handles DELETE /api/bookings/{id}.
func (h *APIHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	deleted, err := h.svc.DeleteBooking(r.Context(), id)
	if err != nil {
		h.log.Printf("delete booking: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete booking")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}
	writeJSON(w, http.StatusOK, model.OKResponse{OK: true})
}

// ListContacts handles GET /api/contacts, optionally narrowed by ?email=.
func (h *APIHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	var (
		contacts []model.ContactSubmission
		err      error
	)
	if email := r.URL.Query().Get("email"); email != "" {
		contacts, err = h.svc.ContactsFrom(r.Context(), email)
	} else {
		contacts, err = h.svc.ListContacts(r.Context())
	}
	if err != nil {
		h.log.Printf("list contacts: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list contacts")
		return
	}
	if contacts == nil {
		contacts = []model.ContactSubmission{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

// CreateContact handles POST /api/contacts.
func (h *APIHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req model.CreateContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	contact, err := h.svc.AddContact(r.Context(), req)
	if err != nil {
		if service.IsValidation(err) {
			writeError(w, http.StatusBadRequest, msgMissingFields)
			return
		}
		h.log.Printf("create contact: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create contact")
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

// ListEvents handles GET /api/events, optionally filtered by ?category=.
func (h *APIHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	var (
		events []model.Event
		err    error
	)
	if c := r.URL.Query().Get("category"); c != "" {
		events, err = h.svc.EventsIn(r.Context(), c)
	} else {
		events, err = h.svc.Events(r.Context())
	}
	if err != nil {
		h.log.Printf("list events: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
