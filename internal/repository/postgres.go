package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store with pgx directly (no ORM).
type PostgresStore struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPostgresStore constructs a PostgresStore over a pool whose schema has
// already been applied.
func NewPostgresStore(db *pgxpool.Pool, now func() time.Time) *PostgresStore {
	if now == nil {
		now = time.Now
	}
	return &PostgresStore{db: db, now: now}
}

var _ Store = (*PostgresStore)(nil)

func (r *PostgresStore) AddBooking(ctx context.Context, b model.Booking) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO bookings (category, event, name, email, date, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		b.Category, b.Event, b.Name, b.Email, r.now().UTC(), model.BookingStatusConfirmed,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w: %w", ErrWrite, err)
	}
	return id, nil
}

func (r *PostgresStore) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return r.queryBookings(ctx, `SELECT `+bookingColumns+` FROM bookings`)
}

func (r *PostgresStore) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id,
	).Scan(&b.ID, &b.Category, &b.Event, &b.Name, &b.Email, &b.Date, &b.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w: %w", ErrRead, err)
	}
	b.Date = b.Date.UTC()
	return &b, nil
}

func (r *PostgresStore) BookingsByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return r.queryBookings(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE email = $1`, email)
}

func (r *PostgresStore) BookingsByEvent(ctx context.Context, event string) ([]model.Booking, error) {
	return r.queryBookings(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE event = $1`, event)
}

func (r *PostgresStore) queryBookings(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w: %w", ErrRead, err)
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Category, &b.Event, &b.Name, &b.Email, &b.Date, &b.Status); err != nil {
			return nil, fmt.Errorf("scan booking: %w: %w", ErrRead, err)
		}
		b.Date = b.Date.UTC()
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w: %w", ErrRead, err)
	}
	return out, nil
}

func (r *PostgresStore) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete booking: %w: %w", ErrWrite, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresStore) AddContact(ctx context.Context, c model.ContactSubmission) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, message, date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		c.Name, c.Email, c.Message, r.now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w: %w", ErrWrite, err)
	}
	return id, nil
}

func (r *PostgresStore) GetContact(ctx context.Context, id int64) (*model.ContactSubmission, error) {
	var c model.ContactSubmission
	err := r.db.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contact_submissions WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get contact: %w: %w", ErrRead, err)
	}
	c.Date = c.Date.UTC()
	return &c, nil
}

func (r *PostgresStore) ListContacts(ctx context.Context) ([]model.ContactSubmission, error) {
	return r.queryContacts(ctx, `SELECT `+contactColumns+` FROM contact_submissions`)
}

func (r *PostgresStore) ContactsByEmail(ctx context.Context, email string) ([]model.ContactSubmission, error) {
	return r.queryContacts(ctx, `SELECT `+contactColumns+` FROM contact_submissions WHERE email = $1`, email)
}

func (r *PostgresStore) queryContacts(ctx context.Context, query string, args ...any) ([]model.ContactSubmission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w: %w", ErrRead, err)
	}
	defer rows.Close()

	var out []model.ContactSubmission
	for rows.Next() {
		var c model.ContactSubmission
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Date); err != nil {
			return nil, fmt.Errorf("scan contact: %w: %w", ErrRead, err)
		}
		c.Date = c.Date.UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w: %w", ErrRead, err)
	}
	return out, nil
}

func (r *PostgresStore) GetUser(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx,
		`SELECT email, name, password_hash, created_at FROM users WHERE email = $1`,
		normalizeEmail(email),
	).Scan(&u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w: %w", ErrRead, err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *PostgresStore) PutUser(ctx context.Context, u model.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (email, name, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (email) DO UPDATE SET
		   name = EXCLUDED.name,
		   password_hash = EXCLUDED.password_hash,
		   created_at = EXCLUDED.created_at`,
		normalizeEmail(u.Email), u.Name, u.PasswordHash, u.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("put user: %w: %w", ErrWrite, err)
	}
	return nil
}

func (r *PostgresStore) CountEvents(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w: %w", ErrRead, err)
	}
	return n, nil
}

// SeedEvents replaces the catalog inside one transaction, so readers see
// either the old catalog or the new one.
func (r *PostgresStore) SeedEvents(ctx context.Context, events []model.Event) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("clear events: %w: %w", ErrWrite, err)
	}

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(
			`INSERT INTO events (`+eventColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			e.ID, e.Title, e.Category, e.Description, e.Date, e.Time, e.Venue, e.Price, e.ImageURL,
		)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert events: %w: %w", ErrWrite, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w: %w", ErrWrite, err)
	}
	return nil
}

func (r *PostgresStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	return r.queryEvents(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
}

func (r *PostgresStore) EventsByCategory(ctx context.Context, category string) ([]model.Event, error) {
	return r.queryEvents(ctx, `SELECT `+eventColumns+` FROM events WHERE category = $1 ORDER BY id`, category)
}

func (r *PostgresStore) queryEvents(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w: %w", ErrRead, err)
	}
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Event, error) {
		var e model.Event
		err := row.Scan(&e.ID, &e.Title, &e.Category, &e.Description, &e.Date,
			&e.Time, &e.Venue, &e.Price, &e.ImageURL)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan events: %w: %w", ErrRead, err)
	}
	return events, nil
}

// Close releases the pool.
func (r *PostgresStore) Close() error {
	r.db.Close()
	return nil
}
