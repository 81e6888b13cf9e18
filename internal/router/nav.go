package router

import "github.com/Shivanand-hulikatti/event-ease/internal/model"

// NavLink is one entry of the site navigation.
type NavLink struct {
	Label   string
	Href    string
	Visible bool
	Active  bool
}

// NavBar is the navigation as shown for one session.
type NavBar struct {
	Links         []NavLink
	LogoutVisible bool
}

var mainNav = []struct{ label, route string }{
	{"Home", "home"},
	{"Categories", "categories"},
	{"My Bookings", "bookings"},
	{"Campus Map", "map"},
	{"Contact", "contact"},
	{"About", "about"},
	{"Login", "login"},
}

// Nav builds the navigation bar for session with activeHref highlighted.
// Signed-in users see every link and the login link becomes "Account"
// pointing at settings. Anonymous users only see the login link.
func Nav(session model.Session, activeHref string) NavBar {
	authed := model.IsAuthenticated(session)
	bar := NavBar{LogoutVisible: authed}
	for _, n := range mainNav {
		link := NavLink{Label: n.label, Href: "#" + n.route}
		if n.route == Login {
			link.Visible = true
			if authed {
				link.Label = "Account"
				link.Href = "#" + Settings
			}
		} else {
			link.Visible = authed
		}
		link.Active = link.Href == activeHref
		bar.Links = append(bar.Links, link)
	}
	return bar
}
