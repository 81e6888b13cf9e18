package kv

import (
	"context"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s, err := NewRedisStore(context.Background(), rdb, Options{})
	require.NoError(t, err)
	return s, mr
}

func TestStoresRoundTrip(t *testing.T) {
	rs, _ := newRedisStore(t)
	stores := map[string]Store{
		"memory": NewMemoryStore(nil),
		"redis":  rs,
	}
	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "missing")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "k", []byte("v1"), 0))
			require.NoError(t, s.Set(ctx, "k", []byte("v2"), 0))
			got, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(got))

			require.NoError(t, s.Delete(ctx, "k"))
			_, err = s.Get(ctx, "k")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Delete(ctx, "never-set"))
		})
	}
}

func TestRedisStorePrefixesKeysAndHonoursTTL(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "pending", []byte("x"), time.Minute))
	assert.True(t, mr.Exists("eventease:pending"))

	mr.FastForward(2 * time.Minute)
	_, err := s.Get(ctx, "pending")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(clk.now)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	clk.advance(59 * time.Second)
	_, err := s.Get(ctx, "k")
	require.NoError(t, err)

	clk.advance(time.Second)
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStoreFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), nil, Options{Addr: addr})
	require.Error(t, err)
}

func TestPrefsThemeSurvivesReload(t *testing.T) {
	rs, _ := newRedisStore(t)
	ctx := context.Background()
	id := uuid.New()

	p := NewPrefs(rs, id, 0)
	theme, err := p.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, theme, "unset theme defaults to light")

	require.NoError(t, p.SetTheme(ctx, model.ThemeDark))

	reloaded := NewPrefs(rs, id, 0)
	theme, err = reloaded.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, theme)

	raw, err := rs.Get(ctx, "client:"+id.String()+":"+KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(raw))
}

func TestPrefsAreScopedPerClient(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()

	a := NewPrefs(s, uuid.New(), 0)
	b := NewPrefs(s, uuid.New(), 0)

	require.NoError(t, a.SetSession(ctx, model.Authenticated{Email: "a@b.com", Name: "A"}))

	sa, err := a.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Authenticated{Email: "a@b.com", Name: "A"}, sa)

	sb, err := b.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Anonymous{}, sb)
}

func TestPrefsSessionDecodeFailureIsAnonymous(t *testing.T) {
	s := NewMemoryStore(nil)
	ctx := context.Background()
	p := NewPrefs(s, uuid.New(), 0)

	require.NoError(t, s.Set(ctx, p.key(KeySession), []byte("{not json"), 0))
	sess, err := p.Session(ctx)
	assert.Error(t, err)
	assert.Equal(t, model.Anonymous{}, sess)

	require.NoError(t, p.ClearSession(ctx))
	sess, err = p.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Anonymous{}, sess)
}

func TestPrefsAccountAndPendingBooking(t *testing.T) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(clk.now)
	ctx := context.Background()
	p := NewPrefs(s, uuid.New(), 10*time.Minute)

	acc, err := p.Account(ctx)
	require.NoError(t, err)
	assert.Nil(t, acc)

	require.NoError(t, p.SetAccount(ctx, model.AccountDetails{Name: "A", Email: "a@b.com"}))
	acc, err = p.Account(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.AccountDetails{Name: "A", Email: "a@b.com"}, acc)

	pending := model.PendingBooking{Category: "sports", Event: "Football", Name: "A", Email: "a@b.com", ID: 7}
	require.NoError(t, p.SetPendingBooking(ctx, pending))
	got, err := p.PendingBooking(ctx)
	require.NoError(t, err)
	assert.Equal(t, &pending, got)

	clk.advance(11 * time.Minute)
	got, err = p.PendingBooking(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "pending booking is short-lived")

	require.NoError(t, p.SetPendingBooking(ctx, pending))
	require.NoError(t, p.ClearPendingBooking(ctx))
	got, err = p.PendingBooking(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
