// Package app is the client context: one App per browsing client, built
// once at startup and passed to every UI adapter. It owns the router state,
// the forms and the toasts, and reaches storage only through the service,
// auth and kv packages.
package app

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/Shivanand-hulikatti/event-ease/internal/auth"
	"github.com/Shivanand-hulikatti/event-ease/internal/catalog"
	"github.com/Shivanand-hulikatti/event-ease/internal/form"
	"github.com/Shivanand-hulikatti/event-ease/internal/kv"
	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/Shivanand-hulikatti/event-ease/internal/repository"
	"github.com/Shivanand-hulikatti/event-ease/internal/router"
	"github.com/Shivanand-hulikatti/event-ease/internal/service"
	"github.com/Shivanand-hulikatti/event-ease/internal/view"
)

// Form ids.
const (
	FormBooking = "bookingForm"
	FormPayment = "paymentForm"
	FormContact = "contactForm"
	FormMap     = "mapSearchForm"
	FormAccount = "accountForm"
	FormSignIn  = "signInForm"
	FormSignUp  = "signUpForm"
)

// Field ids that only exist on one form.
const (
	FieldAccName       = "accName"
	FieldAccEmail      = "accEmail"
	FieldSignupName    = "signupName"
	FieldSignupEmail   = "signupEmail"
	FieldLoginEmail    = "loginEmail"
	FieldLoginPassword = "loginPassword"
)

// Options configures an App. Zero values pick the defaults.
type Options struct {
	Logger *log.Logger
	// Persistent is false when the app runs on the in-memory fallback store.
	Persistent bool
	// PaymentDelay is the simulated processing time before returning home.
	PaymentDelay time.Duration
	// Location is used to display booking times.
	Location *time.Location
	// Confirm asks the user a yes/no question. Nil answers yes.
	Confirm func(prompt string) bool
	// Sleep waits for d or until ctx is done.
	Sleep func(ctx context.Context, d time.Duration) error
	Auth  []auth.Option
}

// Screen is everything currently shown.
type Screen struct {
	router.State
	Nav         router.NavBar
	BodyClasses []string
	Theme       model.Theme
	// Bookings is filled on the bookings page.
	Bookings view.BookingList
	// Categories is filled on the categories page and Events on a
	// category page.
	Categories []catalog.Category
	Events     []view.EventCard
	// Payment is the pending booking summary on the payment page.
	Payment     *view.PaymentSummary
	PaymentRows form.PaymentRows
	MapURL      string
	// SignUpVisible selects the sign-up form over the sign-in form.
	SignUpVisible bool
}

// App is not safe for concurrent use; adapters drive it from one loop.
type App struct {
	bookings *service.BookingService
	prefs    *kv.Prefs
	auth     *auth.Manager
	history  *router.History
	log      *log.Logger

	persistent   bool
	paymentDelay time.Duration
	loc          *time.Location
	confirm      func(string) bool
	sleep        func(context.Context, time.Duration) error

	forms  map[string]*form.Form
	screen Screen
	theme  model.Theme
	toasts []Toast
}

// New builds the client context over a document store and a client's
// key-value namespace.
func New(store repository.Store, prefs *kv.Prefs, opts Options) *App {
	a := &App{
		bookings:     service.NewBookingService(store),
		prefs:        prefs,
		auth:         auth.NewManager(store, prefs, opts.Auth...),
		history:      router.NewHistory(),
		log:          opts.Logger,
		persistent:   opts.Persistent,
		paymentDelay: opts.PaymentDelay,
		loc:          opts.Location,
		confirm:      opts.Confirm,
		sleep:        opts.Sleep,
		theme:        model.ThemeLight,
	}
	if a.log == nil {
		a.log = log.New(io.Discard, "", 0)
	}
	if a.loc == nil {
		a.loc = time.Local
	}
	if a.confirm == nil {
		a.confirm = func(string) bool { return true }
	}
	if a.sleep == nil {
		a.sleep = sleepContext
	}
	a.forms = map[string]*form.Form{
		FormBooking: form.New(FormBooking, form.FieldCategory, form.FieldEvent, form.FieldName, form.FieldEmail),
		FormPayment: form.New(FormPayment, form.FieldMethod, form.FieldUPI, form.FieldCardNumber),
		FormContact: form.New(FormContact, form.FieldName, form.FieldEmail, form.FieldMessage),
		FormMap:     form.New(FormMap, form.FieldQuery),
		FormAccount: form.New(FormAccount, FieldAccName, FieldAccEmail),
		FormSignIn:  form.New(FormSignIn, FieldLoginEmail, FieldLoginPassword),
		FormSignUp:  form.New(FormSignUp, FieldSignupName, FieldSignupEmail, form.FieldPassword, form.FieldConfirm),
	}
	a.forms[FormPayment].Set(form.FieldMethod, "upi")
	return a
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Form returns the form with the given id, or nil.
func (a *App) Form(id string) *form.Form { return a.forms[id] }

// Screen returns the current screen.
func (a *App) Screen() Screen { return a.screen }

// Persistent reports whether data survives a restart.
func (a *App) Persistent() bool { return a.persistent }

// Start restores the theme and account prefill and shows the initial
// route taken from hash. Without a persistent store it also warns the
// user once.
func (a *App) Start(ctx context.Context, hash string) Screen {
	if !a.persistent {
		a.log.Printf("starting without persistent storage")
		a.toast(msgInitFailed, ToastError)
	}

	theme, err := a.prefs.Theme(ctx)
	if err != nil {
		a.log.Printf("load theme preference: %v", err)
	}
	a.theme = theme

	a.loadAccountForm(ctx)
	if acct, err := a.prefs.Account(ctx); err != nil {
		a.log.Printf("load account details: %v", err)
	} else if acct != nil {
		view.Prefill(*acct, a.forms[FormBooking], a.forms[FormContact])
	}

	a.screen.PaymentRows = form.RowsFor(a.forms[FormPayment].Get(form.FieldMethod))
	return a.Navigate(ctx, router.InitialRoute(hash))
}

// session reads the current session. Failures are logged and treated as
// logged out.
func (a *App) session(ctx context.Context) model.Session {
	s, err := a.auth.Current(ctx)
	if err != nil {
		a.log.Printf("read session: %v", err)
	}
	return s
}

// Navigate shows route, subject to the auth gate, and records it in
// history. Back, Forward and HashChange all end up here.
func (a *App) Navigate(ctx context.Context, route string) Screen {
	sess := a.session(ctx)
	st := router.Resolve(sess, route)

	prev := a.screen
	a.screen = Screen{
		State:         st,
		Nav:           router.Nav(sess, st.ActiveHref),
		BodyClasses:   st.BodyClasses(a.theme == model.ThemeDark),
		Theme:         a.theme,
		PaymentRows:   prev.PaymentRows,
		MapURL:        prev.MapURL,
		SignUpVisible: prev.SignUpVisible,
	}
	a.history.Push(st.Route)

	switch {
	case st.RefreshBookings:
		a.screen.Bookings = a.RefreshBookings(ctx)
	case st.Route == "categories":
		a.screen.Categories = catalog.Categories()
	case catalog.IsCategory(st.Route):
		a.forms[FormBooking].Set(form.FieldCategory, st.Route)
		a.screen.Events = a.categoryEvents(ctx, st.Route)
	case st.Route == router.Payment:
		a.screen.Payment = a.pendingSummary(ctx)
	}
	return a.screen
}

// HashChange handles a history token change.
func (a *App) HashChange(ctx context.Context, hash string) Screen {
	return a.Navigate(ctx, router.HashChangeRoute(hash))
}

// Back goes one history entry back. ok is false at the oldest entry.
func (a *App) Back(ctx context.Context) (Screen, bool) {
	route, ok := a.history.Back()
	if !ok {
		return a.screen, false
	}
	return a.HashChange(ctx, route), true
}

// Forward goes one history entry forward.
func (a *App) Forward(ctx context.Context) (Screen, bool) {
	route, ok := a.history.Forward()
	if !ok {
		return a.screen, false
	}
	return a.HashChange(ctx, route), true
}

// RefreshBookings reloads the booking list shown on the bookings page.
func (a *App) RefreshBookings(ctx context.Context) view.BookingList {
	all, err := a.bookings.ListBookings(ctx)
	if err != nil {
		a.log.Printf("load bookings: %v", err)
		return view.BookingList{Message: view.BookingsLoadError}
	}
	list := view.Bookings(all, a.loc)
	if a.screen.Route == router.Bookings {
		a.screen.Bookings = list
	}
	return list
}

func (a *App) categoryEvents(ctx context.Context, category string) []view.EventCard {
	events, err := a.bookings.EventsIn(ctx, category)
	if err != nil {
		a.log.Printf("load %s events: %v", category, err)
		return nil
	}
	cards, err := view.EventCards(events)
	if err != nil {
		a.log.Printf("render %s events: %v", category, err)
		return nil
	}
	return cards
}

func (a *App) pendingSummary(ctx context.Context) *view.PaymentSummary {
	p, err := a.prefs.PendingBooking(ctx)
	if err != nil {
		a.log.Printf("load pending booking: %v", err)
		return nil
	}
	s, ok := view.SummaryFor(p)
	if !ok {
		return nil
	}
	return &s
}

// loadAccountForm fills the account form from the saved account blob.
func (a *App) loadAccountForm(ctx context.Context) {
	acct, err := a.prefs.Account(ctx)
	if err != nil {
		a.log.Printf("load account details: %v", err)
		return
	}
	if acct == nil {
		return
	}
	f := a.forms[FormAccount]
	f.Set(FieldAccName, acct.Name)
	f.Set(FieldAccEmail, acct.Email)
}

// SetTheme applies and persists the theme.
func (a *App) SetTheme(ctx context.Context, theme model.Theme) error {
	if theme != model.ThemeDark {
		theme = model.ThemeLight
	}
	a.theme = theme
	a.screen.Theme = theme
	a.screen.BodyClasses = a.screen.State.BodyClasses(theme == model.ThemeDark)
	if err := a.prefs.SetTheme(ctx, theme); err != nil {
		a.log.Printf("save theme preference: %v", err)
		a.toast(msgThemeFailed, ToastError)
		return err
	}
	return nil
}

// Theme returns the applied theme.
func (a *App) Theme() model.Theme { return a.theme }
