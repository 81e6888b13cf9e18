package app

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/auth"
	"github.com/Shivanand-hulikatti/event-ease/internal/catalog"
	"github.com/Shivanand-hulikatti/event-ease/internal/config"
	"github.com/Shivanand-hulikatti/event-ease/internal/form"
	"github.com/Shivanand-hulikatti/event-ease/internal/kv"
	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/Shivanand-hulikatti/event-ease/internal/repository"
	"github.com/Shivanand-hulikatti/event-ease/internal/router"
	"github.com/Shivanand-hulikatti/event-ease/internal/view"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	app      *App
	store    *repository.MemoryStore
	kv       *kv.MemoryStore
	clientID uuid.UUID
	slept    []time.Duration
	answer   bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:    repository.NewMemoryStore(nil),
		kv:       kv.NewMemoryStore(nil),
		clientID: uuid.New(),
		answer:   true,
	}
	h.app = h.open()
	return h
}

// open builds a fresh App over the same storage, like reloading the page.
func (h *harness) open() *App {
	return New(h.store, kv.NewPrefs(h.kv, h.clientID, time.Minute), Options{
		Persistent:   true,
		PaymentDelay: 2 * time.Second,
		Location:     time.UTC,
		Confirm:      func(string) bool { return h.answer },
		Sleep: func(_ context.Context, d time.Duration) error {
			h.slept = append(h.slept, d)
			return nil
		},
	})
}

func (h *harness) signUpAndIn(t *testing.T, ctx context.Context) {
	t.Helper()
	up := h.app.Form(FormSignUp)
	up.Set(FieldSignupName, "Ada")
	up.Set(FieldSignupEmail, "Ada@Example.com")
	up.Set(form.FieldPassword, "pw")
	up.Set(form.FieldConfirm, "pw")
	require.NoError(t, h.app.SignUp(ctx))

	in := h.app.Form(FormSignIn)
	in.Set(FieldLoginPassword, "pw")
	require.NoError(t, h.app.SignIn(ctx))
	h.app.Toasts()
}

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func lastToast(t *testing.T, a *App) Toast {
	t.Helper()
	toasts := a.Toasts()
	require.NotEmpty(t, toasts)
	return toasts[len(toasts)-1]
}

func TestStartDefaultsToLogin(t *testing.T) {
	h := newHarness(t)
	sc := h.app.Start(context.Background(), "")

	assert.Equal(t, router.Login, sc.Route)
	assert.Equal(t, "login-page", sc.Page)
	assert.False(t, sc.Nav.LogoutVisible)
	assert.Equal(t, model.ThemeLight, sc.Theme)
	assert.Equal(t, form.PaymentRows{UPI: true}, sc.PaymentRows)
	assert.Empty(t, h.app.Toasts())
}

func TestAuthGateThenBookingsAfterSignIn(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "#bookings")

	sc := h.app.Navigate(ctx, router.Bookings)
	assert.True(t, sc.Redirected)
	assert.Equal(t, "login-page", sc.Page)

	h.signUpAndIn(t, ctx)
	assert.Equal(t, router.Settings, h.app.Screen().Route)
	assert.Equal(t, "Ada", h.app.Form(FormAccount).Get(FieldAccName))
	assert.Equal(t, "ada@example.com", h.app.Form(FormAccount).Get(FieldAccEmail))

	sc = h.app.Navigate(ctx, router.Bookings)
	assert.False(t, sc.Redirected)
	assert.Equal(t, "bookings-page", sc.Page)
	assert.Equal(t, view.NoBookings, sc.Bookings.Message)
	assert.True(t, sc.Nav.LogoutVisible)
}

func TestBookingFlowThroughPayment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := catalog.Seed(ctx, h.store)
	require.NoError(t, err)
	h.app.Start(ctx, "")
	h.signUpAndIn(t, ctx)

	sc := h.app.Navigate(ctx, "sports")
	require.Len(t, sc.Events, 1)
	assert.Equal(t, "Sports Tournament", sc.Events[0].Title)

	f := h.app.Form(FormBooking)
	assert.Equal(t, "sports", f.Get(form.FieldCategory))
	f.Set(form.FieldEvent, "Sports Tournament")
	f.Set(form.FieldName, "Ada")
	f.Set(form.FieldEmail, "ada@example.com")
	require.NoError(t, h.app.SubmitBooking(ctx))

	sc = h.app.Screen()
	assert.Equal(t, router.Payment, sc.Route)
	require.NotNil(t, sc.Payment)
	assert.Equal(t, "Sports Tournament", sc.Payment.Event)

	prefs := kv.NewPrefs(h.kv, h.clientID, 0)
	pending, err := prefs.PendingBooking(ctx)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.EqualValues(t, 1, pending.ID)

	require.NoError(t, h.app.SubmitPayment(ctx))
	assert.Equal(t, Toast{Message: msgPaymentDone, Kind: ToastSuccess}, lastToast(t, h.app))
	assert.Equal(t, []time.Duration{2 * time.Second}, h.slept)
	assert.Equal(t, router.Home, h.app.Screen().Route)
	assert.Equal(t, []string{router.BackgroundHero}, h.app.Screen().BodyClasses)

	pending, err = prefs.PendingBooking(ctx)
	require.NoError(t, err)
	assert.Nil(t, pending)

	sc = h.app.Navigate(ctx, router.Bookings)
	require.Len(t, sc.Bookings.Rows, 1)
	assert.Equal(t, "Sports Tournament", sc.Bookings.Rows[0].Event)
}

func TestSubmitBookingRequiresFields(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "")
	h.signUpAndIn(t, ctx)

	err := h.app.SubmitBooking(ctx)
	require.Error(t, err)
	assert.Equal(t, Toast{Message: msgRequiredFields, Kind: ToastWarning}, lastToast(t, h.app))
	assert.Equal(t, router.Settings, h.app.Screen().Route)
}

func TestCancelBookingAsksFirst(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "")
	h.signUpAndIn(t, ctx)

	id, err := h.store.AddBooking(ctx, model.Booking{Category: "social", Event: "Beach Cleanup", Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	h.app.Navigate(ctx, router.Bookings)

	h.answer = false
	require.NoError(t, h.app.CancelBooking(ctx, id))
	assert.Empty(t, h.app.Toasts())
	assert.Len(t, h.app.Screen().Bookings.Rows, 1)

	h.answer = true
	require.NoError(t, h.app.CancelBooking(ctx, id))
	assert.Equal(t, Toast{Message: msgBookingCancelled, Kind: ToastSuccess}, lastToast(t, h.app))
	assert.Equal(t, view.NoBookings, h.app.Screen().Bookings.Message)

	require.NoError(t, h.app.CancelBooking(ctx, id), "cancelling twice is harmless")
}

func TestContactFormIsClearedAfterSubmit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "")

	f := h.app.Form(FormContact)
	f.Set(form.FieldName, "A")
	f.Set(form.FieldEmail, "a@b.com")
	f.Set(form.FieldMessage, "hi")
	require.NoError(t, h.app.SubmitContact(ctx))

	assert.Equal(t, Toast{Message: msgContactSent, Kind: ToastSuccess}, lastToast(t, h.app))
	assert.Empty(t, f.Values())

	all, err := h.store.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "a@b.com", all[0].Email)
	assert.Equal(t, "hi", all[0].Message)
	assert.False(t, all[0].Date.IsZero())
}

func TestThemeSurvivesReload(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "")
	require.NoError(t, h.app.SetTheme(ctx, model.ThemeDark))
	assert.Contains(t, h.app.Screen().BodyClasses, router.DarkThemeClass)

	raw, err := h.kv.Get(ctx, "client:"+h.clientID.String()+":"+kv.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(raw))

	reloaded := h.open()
	sc := reloaded.Start(ctx, "")
	assert.Equal(t, model.ThemeDark, reloaded.Theme())
	assert.Equal(t, []string{router.BackgroundEvents, router.DarkThemeClass}, sc.BodyClasses)
}

func TestSignUpFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "")
	h.app.ShowSignUp()
	assert.True(t, h.app.Screen().SignUpVisible)

	up := h.app.Form(FormSignUp)
	up.Set(FieldSignupName, "Ada")
	up.Set(FieldSignupEmail, "ada@example.com")
	up.Set(form.FieldPassword, "one")
	up.Set(form.FieldConfirm, "two")
	assert.ErrorIs(t, h.app.SignUp(ctx), auth.ErrPasswordMismatch)
	assert.Equal(t, Toast{Message: msgPasswordMismatch, Kind: ToastError}, lastToast(t, h.app))

	up.Set(form.FieldConfirm, "one")
	require.NoError(t, h.app.SignUp(ctx))
	assert.Equal(t, Toast{Message: msgAccountCreated, Kind: ToastSuccess}, lastToast(t, h.app))
	assert.False(t, h.app.Screen().SignUpVisible)
	assert.Equal(t, "ada@example.com", h.app.Form(FormSignIn).Get(FieldLoginEmail))

	assert.ErrorIs(t, h.app.SignUp(ctx), auth.ErrAccountExists)
	assert.Equal(t, Toast{Message: msgAccountExists, Kind: ToastWarning}, lastToast(t, h.app))
}

func TestSignInFailuresStayAnonymous(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "")

	in := h.app.Form(FormSignIn)
	in.Set(FieldLoginEmail, "ghost@example.com")
	in.Set(FieldLoginPassword, "x")
	assert.ErrorIs(t, h.app.SignIn(ctx), auth.ErrNoSuchAccount)
	assert.Equal(t, Toast{Message: msgNoSuchAccount, Kind: ToastWarning}, lastToast(t, h.app))

	up := h.app.Form(FormSignUp)
	up.Set(FieldSignupEmail, "ghost@example.com")
	up.Set(form.FieldPassword, "right")
	up.Set(form.FieldConfirm, "right")
	require.NoError(t, h.app.SignUp(ctx))
	h.app.Toasts()

	in.Set(FieldLoginPassword, "wrong")
	assert.ErrorIs(t, h.app.SignIn(ctx), auth.ErrInvalidCredentials)
	assert.Equal(t, Toast{Message: msgBadCredentials, Kind: ToastError}, lastToast(t, h.app))
	assert.Equal(t, router.Login, h.app.Navigate(ctx, router.Home).Route)
}

func TestLogoutReturnsToLogin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "")
	h.signUpAndIn(t, ctx)

	require.NoError(t, h.app.Logout(ctx))
	assert.Equal(t, Toast{Message: msgLoggedOut, Kind: ToastSuccess}, lastToast(t, h.app))
	sc := h.app.Screen()
	assert.Equal(t, router.Login, sc.Route)
	assert.True(t, sc.Redirected)
	assert.False(t, sc.Nav.LogoutVisible)
}

func TestSaveAccountPrefillsForms(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "")
	h.app.Form(FormContact).Set(form.FieldName, "Already typed")

	acct := h.app.Form(FormAccount)
	acct.Set(FieldAccName, "  Bo ")
	acct.Set(FieldAccEmail, "bo@example.com ")
	require.NoError(t, h.app.SaveAccount(ctx))
	assert.Equal(t, Toast{Message: msgAccountSaved, Kind: ToastSuccess}, lastToast(t, h.app))

	assert.Equal(t, "Bo", h.app.Form(FormBooking).Get(form.FieldName))
	assert.Equal(t, "bo@example.com", h.app.Form(FormBooking).Get(form.FieldEmail))
	assert.Equal(t, "Already typed", h.app.Form(FormContact).Get(form.FieldName))

	reloaded := h.open()
	reloaded.Start(ctx, "")
	assert.Equal(t, "Bo", reloaded.Form(FormAccount).Get(FieldAccName))
	assert.Equal(t, "bo@example.com", reloaded.Form(FormContact).Get(form.FieldEmail))
}

func TestBackAndForwardRerunTheGate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.app.Start(ctx, "")
	h.signUpAndIn(t, ctx)
	h.app.Navigate(ctx, router.Contact)
	h.app.Navigate(ctx, router.Map)

	sc, ok := h.app.Back(ctx)
	require.True(t, ok)
	assert.Equal(t, router.Contact, sc.Route)

	sc, ok = h.app.Forward(ctx)
	require.True(t, ok)
	assert.Equal(t, router.Map, sc.Route)

	require.NoError(t, h.app.Logout(ctx))
	sc, ok = h.app.Back(ctx)
	require.True(t, ok)
	assert.Equal(t, router.Login, sc.Route, "history entries are still gated")

	sc = h.app.HashChange(ctx, "")
	assert.Equal(t, router.Login, sc.Route)
}

func TestPaymentHelpers(t *testing.T) {
	h := newHarness(t)
	h.app.Start(context.Background(), "")

	assert.Equal(t, form.PaymentRows{Card: true}, h.app.SelectPaymentMethod("card"))
	assert.Equal(t, "4111 1111", h.app.Form(FormPayment).Input(form.FieldCardNumber, "41111111"))

	h.app.Form(FormPayment).Set(form.FieldUPI, "bad")
	assert.False(t, h.app.CheckUPI())
	assert.Equal(t, Toast{Message: msgInvalidUPI, Kind: ToastWarning}, lastToast(t, h.app))

	h.app.Form(FormPayment).Set(form.FieldUPI, "ada@okbank")
	assert.True(t, h.app.CheckUPI())
	assert.Empty(t, h.app.Toasts())
}

func TestSearchMap(t *testing.T) {
	h := newHarness(t)
	h.app.Start(context.Background(), "")

	assert.Empty(t, h.app.SearchMap(""))
	u := h.app.SearchMap("IIT Bombay")
	assert.Equal(t, "https://www.google.com/maps?q=IIT%20Bombay%20college%20campus&output=embed", u)
	assert.Equal(t, u, h.app.SearchMap(""), "empty query keeps the last map")
}

func TestCorruptSessionIsLoggedOut(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.kv.Set(ctx, "client:"+h.clientID.String()+":"+kv.KeySession, []byte("{not json"), 0))

	sc := h.app.Start(ctx, "#home")
	assert.Equal(t, router.Login, sc.Route)
	assert.True(t, sc.Redirected)
}

func TestDegradedStartWarnsOnce(t *testing.T) {
	ctx := context.Background()
	store, persistent := OpenStoreOrFallback(ctx, config.StoreConfig{Driver: config.StoreSQLite}, nil, discardLogger())
	require.False(t, persistent)
	_, isMemory := store.(*repository.MemoryStore)
	require.True(t, isMemory)

	a := New(store, kv.NewPrefs(kv.NewMemoryStore(nil), uuid.New(), 0), Options{Persistent: persistent})
	a.Start(ctx, "")
	assert.Equal(t, []Toast{{Message: msgInitFailed, Kind: ToastError}}, a.Toasts())
	assert.False(t, a.Persistent())
}

func TestOpenStoreDrivers(t *testing.T) {
	ctx := context.Background()

	s, err := OpenStore(ctx, config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: ":memory:"}, nil)
	require.NoError(t, err)
	_, ok := s.(*repository.SQLiteStore)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	_, err = OpenStore(ctx, config.StoreConfig{Driver: "mongo"}, nil)
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)

	mem, persistent := OpenStoreOrFallback(ctx, config.StoreConfig{Driver: config.StoreMemory}, nil, discardLogger())
	assert.False(t, persistent)
	require.NoError(t, SeedCatalog(ctx, mem, config.CatalogConfig{SeedOnStart: true}, discardLogger()))
	n, err := mem.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = OpenKV(ctx, config.KVConfig{Driver: "etcd"})
	assert.Error(t, err)
}
