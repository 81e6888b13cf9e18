package repository

import (
	"context"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/config"
	"github.com/Shivanand-hulikatti/event-ease/internal/database"
	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func clock() func() time.Time {
	var mu sync.Mutex
	t := fixedNow
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Minute)
		return t
	}
}

type storeFactory func(t *testing.T) Store

func backends(t *testing.T) map[string]storeFactory {
	t.Helper()
	b := map[string]storeFactory{
		"memory": func(t *testing.T) Store { return NewMemoryStore(clock()) },
		"sqlite": func(t *testing.T) Store {
			db, err := database.OpenSQLite(context.Background(), ":memory:")
			require.NoError(t, err)
			s := NewSQLiteStore(db, clock())
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
	if dsn := os.Getenv("EVENTEASE_TEST_POSTGRES_DSN"); dsn != "" {
		b["postgres"] = func(t *testing.T) Store {
			ctx := context.Background()
			pool, err := pgxpool.New(ctx, dsn)
			require.NoError(t, err)
			_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS bookings, contact_submissions, users, events`)
			require.NoError(t, err)
			pool.Close()

			cfgPool, err := database.NewPool(ctx, postgresConfigFromDSN(t, dsn))
			require.NoError(t, err)
			s := NewPostgresStore(cfgPool, clock())
			t.Cleanup(func() { _ = s.Close() })
			return s
		}
	}
	return b
}

func postgresConfigFromDSN(t *testing.T, dsn string) config.PostgresConfig {
	t.Helper()
	pc, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cc := pc.ConnConfig
	return config.PostgresConfig{
		Host:     cc.Host,
		Port:     strconv.Itoa(int(cc.Port)),
		User:     cc.User,
		Password: cc.Password,
		DBName:   cc.Database,
		SSLMode:  "disable",
	}
}

func TestStoreBookingsLifecycle(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			first, err := s.AddBooking(ctx, model.Booking{Category: "sports", Event: "Football", Name: "A", Email: "a@b.com"})
			require.NoError(t, err)
			second, err := s.AddBooking(ctx, model.Booking{Category: "cultural", Event: "Dance", Name: "B", Email: "b@b.com"})
			require.NoError(t, err)
			assert.Greater(t, second, first)

			all, err := s.ListBookings(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)

			got, err := s.GetBooking(ctx, first)
			require.NoError(t, err)
			assert.Equal(t, "Football", got.Event)
			assert.Equal(t, "sports", got.Category)
			assert.Equal(t, model.BookingStatusConfirmed, got.Status)
			assert.False(t, got.Date.IsZero())

			deleted, err := s.DeleteBooking(ctx, first)
			require.NoError(t, err)
			assert.True(t, deleted)

			deleted, err = s.DeleteBooking(ctx, first)
			require.NoError(t, err, "deleting an absent id is not an error")
			assert.False(t, deleted)

			all, err = s.ListBookings(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, second, all[0].ID)

			_, err = s.GetBooking(ctx, first)
			assert.ErrorIs(t, err, ErrNotFound)

			third, err := s.AddBooking(ctx, model.Booking{Category: "sports", Event: "Football", Name: "C", Email: "a@b.com"})
			require.NoError(t, err)
			assert.Greater(t, third, second, "ids are never reused")
		})
	}
}

func TestStoreBookingLookups(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			for _, b := range []model.Booking{
				{Category: "sports", Event: "Football", Name: "A", Email: "a@b.com"},
				{Category: "sports", Event: "Cricket", Name: "A", Email: "a@b.com"},
				{Category: "sports", Event: "Football", Name: "C", Email: "c@b.com"},
			} {
				_, err := s.AddBooking(ctx, b)
				require.NoError(t, err)
			}

			byEmail, err := s.BookingsByEmail(ctx, "a@b.com")
			require.NoError(t, err)
			assert.Len(t, byEmail, 2)

			byEvent, err := s.BookingsByEvent(ctx, "Football")
			require.NoError(t, err)
			assert.Len(t, byEvent, 2)

			none, err := s.BookingsByEvent(ctx, "Chess")
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestStoreContacts(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			id, err := s.AddContact(ctx, model.ContactSubmission{Name: "A", Email: "a@b.com", Message: "hi"})
			require.NoError(t, err)
			assert.Positive(t, id)

			list, err := s.ListContacts(ctx)
			require.NoError(t, err)
			require.Len(t, list, 1)
			assert.Equal(t, "hi", list[0].Message)
			assert.False(t, list[0].Date.IsZero())

			byEmail, err := s.ContactsByEmail(ctx, "a@b.com")
			require.NoError(t, err)
			assert.Len(t, byEmail, 1)

			got, err := s.GetContact(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "A", got.Name)

			_, err = s.GetContact(ctx, id+100)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreUsersKeyedByLowercaseEmail(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, err := s.GetUser(ctx, "a@b.com")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.PutUser(ctx, model.User{
				Email: "A@B.com", Name: "A", PasswordHash: "h1", CreatedAt: fixedNow,
			}))
			u, err := s.GetUser(ctx, "a@b.COM")
			require.NoError(t, err)
			assert.Equal(t, "a@b.com", u.Email)
			assert.Equal(t, "h1", u.PasswordHash)
			assert.True(t, fixedNow.Equal(u.CreatedAt))

			require.NoError(t, s.PutUser(ctx, model.User{Email: "a@b.com", Name: "A2", PasswordHash: "h2", CreatedAt: fixedNow}))
			u, err = s.GetUser(ctx, "a@b.com")
			require.NoError(t, err)
			assert.Equal(t, "A2", u.Name)
			assert.Equal(t, "h2", u.PasswordHash)
		})
	}
}

func TestStoreEvents(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			n, err := s.CountEvents(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)

			day := time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)
			require.NoError(t, s.SeedEvents(ctx, []model.Event{
				{ID: 2, Title: "Hack Night", Category: "hackathons", Date: day},
				{ID: 1, Title: "Folk Fest", Category: "cultural", Date: day},
			}))

			n, err = s.CountEvents(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			all, err := s.ListEvents(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, int64(1), all[0].ID)
			assert.True(t, day.Equal(all[0].Date))

			hack, err := s.EventsByCategory(ctx, "hackathons")
			require.NoError(t, err)
			require.Len(t, hack, 1)
			assert.Equal(t, "Hack Night", hack[0].Title)
		})
	}
}

func TestStoreConcurrentAddsGetDistinctIDs(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			const n = 20
			ids := make(chan int64, n)
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					id, err := s.AddBooking(ctx, model.Booking{Category: "c", Event: "e", Name: "n", Email: "x@y.z"})
					assert.NoError(t, err)
					ids <- id
				}()
			}
			wg.Wait()
			close(ids)

			seen := map[int64]bool{}
			for id := range ids {
				assert.False(t, seen[id], "duplicate id %d", id)
				seen[id] = true
			}
			assert.Len(t, seen, n)
		})
	}
}
