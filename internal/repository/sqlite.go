package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/jmoiron/sqlx"
)

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

type bookingRow struct {
	ID       int64  `db:"id"`
	Category string `db:"category"`
	Event    string `db:"event"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Date     int64  `db:"date"`
	Status   string `db:"status"`
}

func (r bookingRow) toModel() model.Booking {
	return model.Booking{
		ID:       r.ID,
		Category: r.Category,
		Event:    r.Event,
		Name:     r.Name,
		Email:    r.Email,
		Date:     fromMillis(r.Date),
		Status:   r.Status,
	}
}

type contactRow struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Message string `db:"message"`
	Date    int64  `db:"date"`
}

func (r contactRow) toModel() model.ContactSubmission {
	return model.ContactSubmission{
		ID:      r.ID,
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
		Date:    fromMillis(r.Date),
	}
}

type userRow struct {
	Email        string `db:"email"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    int64  `db:"created_at"`
}

type eventRow struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Category    string `db:"category"`
	Description string `db:"description"`
	Date        int64  `db:"date"`
	Time        string `db:"time"`
	Venue       string `db:"venue"`
	Price       string `db:"price"`
	ImageURL    string `db:"image_url"`
}

func (r eventRow) toModel() model.Event {
	return model.Event{
		ID:          r.ID,
		Title:       r.Title,
		Category:    r.Category,
		Description: r.Description,
		Date:        fromMillis(r.Date),
		Time:        r.Time,
		Venue:       r.Venue,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
	}
}

const (
	bookingColumns = `id, category, event, name, email, date, status`
	contactColumns = `id, name, email, message, date`
	eventColumns   = `id, title, category, description, date, time, venue, price, image_url`
)

// SQLiteStore implements Store over the embedded SQLite database.
type SQLiteStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSQLiteStore constructs a SQLiteStore over an opened, migrated database.
func NewSQLiteStore(db *sqlx.DB, now func() time.Time) *SQLiteStore {
	if now == nil {
		now = time.Now
	}
	return &SQLiteStore{db: db, now: now}
}

var _ Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) AddBooking(ctx context.Context, b model.Booking) (int64, error) {
	row := bookingRow{
		Category: b.Category,
		Event:    b.Event,
		Name:     b.Name,
		Email:    b.Email,
		Date:     toMillis(s.now()),
		Status:   model.BookingStatusConfirmed,
	}
	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO bookings (category, event, name, email, date, status)
		 VALUES (:category, :event, :name, :email, :date, :status)`,
		row,
	)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w: %w", ErrWrite, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("booking id: %w: %w", ErrWrite, err)
	}
	return id, nil
}

func (s *SQLiteStore) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return s.selectBookings(ctx, `SELECT `+bookingColumns+` FROM bookings`)
}

func (s *SQLiteStore) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	var row bookingRow
	err := s.db.GetContext(ctx, &row, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w: %w", ErrRead, err)
	}
	b := row.toModel()
	return &b, nil
}

func (s *SQLiteStore) BookingsByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return s.selectBookings(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE email = ?`, email)
}

func (s *SQLiteStore) BookingsByEvent(ctx context.Context, event string) ([]model.Booking, error) {
	return s.selectBookings(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE event = ?`, event)
}

func (s *SQLiteStore) selectBookings(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	var rows []bookingRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w: %w", ErrRead, err)
	}
	out := make([]model.Booking, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *SQLiteStore) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete booking: %w: %w", ErrWrite, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete booking: %w: %w", ErrWrite, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) AddContact(ctx context.Context, c model.ContactSubmission) (int64, error) {
	row := contactRow{
		Name:    c.Name,
		Email:   c.Email,
		Message: c.Message,
		Date:    toMillis(s.now()),
	}
	res, err := s.db.NamedExecContext(ctx,
		`INSERT INTO contact_submissions (name, email, message, date)
		 VALUES (:name, :email, :message, :date)`,
		row,
	)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w: %w", ErrWrite, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("contact id: %w: %w", ErrWrite, err)
	}
	return id, nil
}

func (s *SQLiteStore) GetContact(ctx context.Context, id int64) (*model.ContactSubmission, error) {
	var row contactRow
	err := s.db.GetContext(ctx, &row, `SELECT `+contactColumns+` FROM contact_submissions WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact: %w: %w", ErrRead, err)
	}
	c := row.toModel()
	return &c, nil
}

func (s *SQLiteStore) ListContacts(ctx context.Context) ([]model.ContactSubmission, error) {
	return s.selectContacts(ctx, `SELECT `+contactColumns+` FROM contact_submissions`)
}

func (s *SQLiteStore) ContactsByEmail(ctx context.Context, email string) ([]model.ContactSubmission, error) {
	return s.selectContacts(ctx, `SELECT `+contactColumns+` FROM contact_submissions WHERE email = ?`, email)
}

func (s *SQLiteStore) selectContacts(ctx context.Context, query string, args ...any) ([]model.ContactSubmission, error) {
	var rows []contactRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list contacts: %w: %w", ErrRead, err)
	}
	out := make([]model.ContactSubmission, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, email string) (*model.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row,
		`SELECT email, name, password_hash, created_at FROM users WHERE email = ?`,
		normalizeEmail(email),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w: %w", ErrRead, err)
	}
	return &model.User{
		Email:        row.Email,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		CreatedAt:    fromMillis(row.CreatedAt),
	}, nil
}

func (s *SQLiteStore) PutUser(ctx context.Context, u model.User) error {
	row := userRow{
		Email:        normalizeEmail(u.Email),
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		CreatedAt:    toMillis(u.CreatedAt),
	}
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO users (email, name, password_hash, created_at)
		 VALUES (:email, :name, :password_hash, :created_at)
		 ON CONFLICT (email) DO UPDATE SET
		   name = excluded.name,
		   password_hash = excluded.password_hash,
		   created_at = excluded.created_at`,
		row,
	)
	if err != nil {
		return fmt.Errorf("put user: %w: %w", ErrWrite, err)
	}
	return nil
}

func (s *SQLiteStore) CountEvents(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM events`); err != nil {
		return 0, fmt.Errorf("count events: %w: %w", ErrRead, err)
	}
	return n, nil
}

// SeedEvents replaces the catalog in a single transaction.
func (s *SQLiteStore) SeedEvents(ctx context.Context, events []model.Event) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("clear events: %w: %w", ErrWrite, err)
	}
	for _, e := range events {
		row := eventRow{
			ID:          e.ID,
			Title:       e.Title,
			Category:    e.Category,
			Description: e.Description,
			Date:        toMillis(e.Date),
			Time:        e.Time,
			Venue:       e.Venue,
			Price:       e.Price,
			ImageURL:    e.ImageURL,
		}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO events (`+eventColumns+`)
			 VALUES (:id, :title, :category, :description, :date, :time, :venue, :price, :image_url)`,
			row,
		); err != nil {
			return fmt.Errorf("insert event %d: %w: %w", e.ID, ErrWrite, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w: %w", ErrWrite, err)
	}
	return nil
}

func (s *SQLiteStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.selectEvents(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
}

func (s *SQLiteStore) EventsByCategory(ctx context.Context, category string) ([]model.Event, error) {
	return s.selectEvents(ctx, `SELECT `+eventColumns+` FROM events WHERE category = ? ORDER BY id`, category)
}

func (s *SQLiteStore) selectEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events: %w: %w", ErrRead, err)
	}
	out := make([]model.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// Close releases the underlying database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
