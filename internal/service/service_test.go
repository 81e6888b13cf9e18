package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/Shivanand-hulikatti/event-ease/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*BookingService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore(func() time.Time { return fixedNow })
	return NewBookingService(store), store
}

func TestAddBooking(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	before, err := svc.ListBookings(ctx)
	require.NoError(t, err)

	b, err := svc.AddBooking(ctx, model.CreateBookingRequest{
		Category: "sports", Event: "Inter-College Football", Name: " Ada ", Email: "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", b.Name)
	assert.Equal(t, model.BookingStatusConfirmed, b.Status)
	assert.Equal(t, fixedNow, b.Date)

	after, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	second, err := svc.AddBooking(ctx, model.CreateBookingRequest{
		Category: "sports", Event: "Chess Open", Name: "Bo", Email: "bo@example.com",
	})
	require.NoError(t, err)
	assert.Greater(t, second.ID, b.ID)
}

func TestAddBookingValidation(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.AddBooking(ctx, model.CreateBookingRequest{Category: "sports", Name: "  "})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"event", "name", "email"}, ve.Fields)

	all, err := store.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "nothing is written when validation fails")
}

func TestDeleteBooking(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	b, err := svc.AddBooking(ctx, model.CreateBookingRequest{
		Category: "cultural", Event: "Spring Fest", Name: "Ada", Email: "ada@example.com",
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	all, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	for _, got := range all {
		assert.NotEqual(t, b.ID, got.ID)
	}
}

func TestBookingLookups(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for _, req := range []model.CreateBookingRequest{
		{Category: "sports", Event: "Chess Open", Name: "Ada", Email: "ada@example.com"},
		{Category: "sports", Event: "Chess Open", Name: "Bo", Email: "bo@example.com"},
		{Category: "social", Event: "Beach Cleanup", Name: "Ada", Email: "ada@example.com"},
	} {
		_, err := svc.AddBooking(ctx, req)
		require.NoError(t, err)
	}

	mine, err := svc.BookingsFor(ctx, " ada@example.com ")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	chess, err := svc.BookingsForEvent(ctx, "Chess Open")
	require.NoError(t, err)
	assert.Len(t, chess, 2)
}

func TestAddContact(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	c, err := svc.AddContact(ctx, model.CreateContactRequest{Name: "A", Email: "a@b.com", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "A", c.Name)
	assert.Equal(t, "a@b.com", c.Email)
	assert.Equal(t, "hi", c.Message)
	assert.Equal(t, fixedNow, c.Date)

	_, err = svc.AddContact(ctx, model.CreateContactRequest{Name: "A", Email: "a@b.com"})
	assert.True(t, IsValidation(err))

	all, err := svc.ListContacts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := svc.ContactsFrom(ctx, " a@b.com ")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, c.ID, mine[0].ID)

	none, err := svc.ContactsFrom(ctx, "z@b.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUsers(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.GetUser(ctx, "ada@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.True(t, IsValidation(svc.PutUser(ctx, model.User{Name: "Ada"})))

	require.NoError(t, svc.PutUser(ctx, model.User{Email: "Ada@Example.com", Name: "Ada", PasswordHash: "x"}))
	u, err := svc.GetUser(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
}
