// Package router resolves route tokens into page state. It has no I/O:
// callers pass the current session and get back everything the screen
// needs to change.
package router

import (
	"strings"

	"github.com/Shivanand-hulikatti/event-ease/internal/model"
)

// Route tokens with behaviour attached to them.
const (
	Home     = "home"
	Login    = "login"
	Bookings = "bookings"
	Settings = "settings"
	Payment  = "payment"
	Contact  = "contact"
	Map      = "map"
)

// Body background classes. The dark theme class is tracked separately and
// never touched by navigation.
const (
	BackgroundHero   = "bg-hero"
	BackgroundEvents = "bg-events"
	DarkThemeClass   = "theme-dark"
)

var order = []string{
	"home", "about", "categories",
	"cultural", "sports", "workshops", "techtalks", "hackathons", "social",
	"literary", "esports", "entrepreneurship", "photography", "quizzes", "alumni",
	"bookings", "map", "contact", "login", "settings", "payment",
}

var pages = func() map[string]string {
	m := make(map[string]string, len(order))
	for _, r := range order {
		m[r] = r + "-page"
	}
	return m
}()

// Routes returns every known route token in display order.
func Routes() []string {
	return append([]string(nil), order...)
}

// PageFor returns the page id for a route token.
func PageFor(route string) (string, bool) {
	p, ok := pages[route]
	return p, ok
}

// Known reports whether route is in the route table.
func Known(route string) bool {
	_, ok := pages[route]
	return ok
}

// TokenFromHash strips a leading '#' from a location hash.
func TokenFromHash(hash string) string {
	return strings.TrimPrefix(strings.TrimSpace(hash), "#")
}

// State is the outcome of one navigation.
type State struct {
	// Requested is the token the caller asked for.
	Requested string
	// Route is the token actually shown and reflected into history.
	Route string
	// Page is the single active page id.
	Page string
	// Redirected is set when the auth gate replaced the requested route.
	Redirected bool
	Background string
	// ActiveHref is the nav href highlighted for this route.
	ActiveHref string
	// RefreshBookings asks the caller to re-render the booking list.
	RefreshBookings bool
	// DrawerOpen and ScrollY are always reset by a navigation.
	DrawerOpen bool
	ScrollY    int
}

// BodyClasses returns the body class list for s with the dark theme class
// preserved from the caller.
func (s State) BodyClasses(dark bool) []string {
	classes := []string{s.Background}
	if dark {
		classes = append(classes, DarkThemeClass)
	}
	return classes
}

// Resolve applies the auth gate and the route table to token. Anonymous
// sessions may only see the login page; unknown tokens show home.
func Resolve(session model.Session, token string) State {
	st := State{Requested: token, Route: token}

	if !model.IsAuthenticated(session) && token != Login {
		st.Route = Login
		st.Redirected = true
	}
	if !Known(st.Route) {
		st.Route = Home
	}

	st.Page = pages[st.Route]
	st.Background = BackgroundEvents
	if st.Route == Home {
		st.Background = BackgroundHero
	}
	st.ActiveHref = "#" + st.Route
	st.RefreshBookings = st.Route == Bookings
	return st
}

// InitialRoute picks the first route on load. An empty location always
// starts at the login page, independent of any session.
func InitialRoute(hash string) string {
	if t := TokenFromHash(hash); t != "" {
		return t
	}
	return Login
}

// HashChangeRoute maps a history token change to a route. An empty token
// means home.
func HashChangeRoute(hash string) string {
	if t := TokenFromHash(hash); t != "" {
		return t
	}
	return Home
}
