package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Shivanand-hulikatti/event-ease/internal/app"
	"github.com/Shivanand-hulikatti/event-ease/internal/catalog"
	"github.com/Shivanand-hulikatti/event-ease/internal/form"
	"github.com/Shivanand-hulikatti/event-ease/internal/kv"
	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/Shivanand-hulikatti/event-ease/internal/router"
	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	clientFlag string
	hashFlag   string
)

// Menu actions.
const (
	actGoTo          = "Go to…"
	actBack          = "Back"
	actForward       = "Forward"
	actToggleTheme   = "Toggle theme"
	actLogout        = "Log out"
	actQuit          = "Quit"
	actSignIn        = "Sign in"
	actShowSignUp    = "Create an account instead"
	actSignUp        = "Create account"
	actShowSignIn    = "I already have an account"
	actOpenCategory  = "Open a category"
	actBook          = "Book an event"
	actChooseMethod  = "Choose payment method"
	actPay           = "Pay now"
	actCancelBooking = "Cancel a booking"
	actRefresh       = "Refresh"
	actSendMessage   = "Send a message"
	actSearchMap     = "Search the campus map"
	actSaveAccount   = "Save account details"
	actTypeRoute     = "Type a route…"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive EventEase client",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		clientID, err := parseClientID(clientFlag)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		logger := quietLogger()

		store, persistent := app.OpenStoreOrFallback(ctx, cfg.Store, nil, logger)
		defer store.Close()
		if err := app.SeedCatalog(ctx, store, cfg.Catalog, logger); err != nil {
			logger.Printf("seed catalog: %v", err)
		}

		blobs, err := app.OpenKV(ctx, cfg.KV)
		if err != nil {
			logger.Printf("kv store unavailable, continuing without persistence: %v", err)
			blobs = kv.NewMemoryStore(nil)
			persistent = false
		}
		defer blobs.Close()

		a := app.New(store, kv.NewPrefs(blobs, clientID, cfg.Session.PendingBookingTTL), app.Options{
			Logger:       logger,
			Persistent:   persistent,
			PaymentDelay: cfg.Payment.Delay,
			Confirm:      confirm,
		})
		sh := &shell{app: a, out: cmd.OutOrStdout(), log: logger}
		return sh.run(ctx, hashFlag)
	},
}

func init() {
	shellCmd.Flags().StringVar(&clientFlag, "client", "", "client id (uuid) owning the session and preferences")
	shellCmd.Flags().StringVar(&hashFlag, "hash", "", "initial route token, e.g. #bookings")
	rootCmd.AddCommand(shellCmd)
}

// parseClientID returns the id given with --client, or a fixed id for the
// local machine.
func parseClientID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte("eventease://local")), nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --client %q: %w", s, err)
	}
	return id, nil
}

func confirm(label string) bool {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := p.Run()
	return err == nil
}

func isAbort(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort)
}

type shell struct {
	app *app.App
	out io.Writer
	log *log.Logger
}

func (s *shell) run(ctx context.Context, hash string) error {
	sc := s.app.Start(ctx, hash)
	for {
		renderScreen(s.out, sc)
		printToasts(s.out, s.app.Toasts())

		actions := actionsFor(sc)
		menu := promptui.Select{Label: "What next?", Items: actions, Size: len(actions)}
		_, choice, err := menu.Run()
		if err != nil {
			if isAbort(err) {
				return nil
			}
			return fmt.Errorf("menu: %w", err)
		}
		if choice == actQuit {
			return nil
		}

		if err := s.do(ctx, choice); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !isAbort(err) {
				s.log.Printf("%s: %v", choice, err)
			}
		}
		sc = s.app.Screen()
	}
}

func (s *shell) do(ctx context.Context, action string) error {
	sc := s.app.Screen()
	switch action {
	case actGoTo:
		return s.goTo(ctx, sc)
	case actTypeRoute:
		token, err := ask("Route (e.g. #bookings)", "", false)
		if err != nil {
			return err
		}
		s.app.HashChange(ctx, token)
	case actBack:
		s.app.Back(ctx)
	case actForward:
		s.app.Forward(ctx)
	case actToggleTheme:
		next := model.ThemeDark
		if s.app.Theme() == model.ThemeDark {
			next = model.ThemeLight
		}
		return s.app.SetTheme(ctx, next)
	case actLogout:
		return s.app.Logout(ctx)

	case actSignIn:
		if err := fill(s.app.Form(app.FormSignIn),
			field{app.FieldLoginEmail, "Email", false},
			field{app.FieldLoginPassword, "Password", true},
		); err != nil {
			return err
		}
		return s.app.SignIn(ctx)
	case actShowSignUp:
		s.app.ShowSignUp()
	case actSignUp:
		if err := fill(s.app.Form(app.FormSignUp),
			field{app.FieldSignupName, "Name", false},
			field{app.FieldSignupEmail, "Email", false},
			field{form.FieldPassword, "Password", true},
			field{form.FieldConfirm, "Confirm password", true},
		); err != nil {
			return err
		}
		return s.app.SignUp(ctx)
	case actShowSignIn:
		s.app.ShowSignIn()

	case actOpenCategory:
		labels := make([]string, len(sc.Categories))
		for i, c := range sc.Categories {
			labels[i] = c.Label
		}
		i, _, err := (&promptui.Select{Label: "Category", Items: labels, Size: len(labels)}).Run()
		if err != nil {
			return err
		}
		s.app.Navigate(ctx, sc.Categories[i].Route)
	case actBook:
		return s.book(ctx, sc)

	case actChooseMethod:
		return s.choosePayment()
	case actPay:
		fmt.Fprintln(s.out, "Processing payment…")
		return s.app.SubmitPayment(ctx)

	case actCancelBooking:
		labels := make([]string, len(sc.Bookings.Rows))
		for i, r := range sc.Bookings.Rows {
			labels[i] = fmt.Sprintf("#%d %s (%s)", r.ID, r.Event, r.BookedOn)
		}
		i, _, err := (&promptui.Select{Label: "Booking", Items: labels}).Run()
		if err != nil {
			return err
		}
		return s.app.CancelBooking(ctx, sc.Bookings.Rows[i].ID)
	case actRefresh:
		s.app.RefreshBookings(ctx)

	case actSendMessage:
		if err := fill(s.app.Form(app.FormContact),
			field{form.FieldName, "Name", false},
			field{form.FieldEmail, "Email", false},
			field{form.FieldMessage, "Message", false},
		); err != nil {
			return err
		}
		return s.app.SubmitContact(ctx)
	case actSearchMap:
		q, err := ask("Search", s.app.Form(app.FormMap).Get(form.FieldQuery), false)
		if err != nil {
			return err
		}
		s.app.SearchMap(q)
	case actSaveAccount:
		if err := fill(s.app.Form(app.FormAccount),
			field{app.FieldAccName, "Name", false},
			field{app.FieldAccEmail, "Email", false},
		); err != nil {
			return err
		}
		return s.app.SaveAccount(ctx)
	}
	return nil
}

func (s *shell) goTo(ctx context.Context, sc app.Screen) error {
	var links []router.NavLink
	for _, l := range sc.Nav.Links {
		if l.Visible {
			links = append(links, l)
		}
	}
	labels := make([]string, 0, len(links)+1)
	for _, l := range links {
		labels = append(labels, l.Label)
	}
	labels = append(labels, actTypeRoute)

	i, _, err := (&promptui.Select{Label: "Go to", Items: labels, Size: len(labels)}).Run()
	if err != nil {
		return err
	}
	if i == len(links) {
		return s.do(ctx, actTypeRoute)
	}
	s.app.Navigate(ctx, router.TokenFromHash(links[i].Href))
	return nil
}

func (s *shell) book(ctx context.Context, sc app.Screen) error {
	f := s.app.Form(app.FormBooking)
	if len(sc.Events) > 0 {
		titles := make([]string, len(sc.Events))
		for i, e := range sc.Events {
			titles[i] = e.Title
		}
		_, title, err := (&promptui.Select{Label: "Event", Items: titles}).Run()
		if err != nil {
			return err
		}
		f.Set(form.FieldEvent, title)
	} else if err := fill(f, field{form.FieldEvent, "Event", false}); err != nil {
		return err
	}
	if err := fill(f,
		field{form.FieldName, "Name", false},
		field{form.FieldEmail, "Email", false},
	); err != nil {
		return err
	}
	return s.app.SubmitBooking(ctx)
}

func (s *shell) choosePayment() error {
	methods := []string{"upi", "card", "netbanking"}
	_, method, err := (&promptui.Select{Label: "Payment method", Items: methods}).Run()
	if err != nil {
		return err
	}
	rows := s.app.SelectPaymentMethod(method)
	f := s.app.Form(app.FormPayment)
	switch {
	case rows.UPI:
		if err := fill(f, field{form.FieldUPI, "UPI ID", false}); err != nil {
			return err
		}
		s.app.CheckUPI()
	case rows.Card:
		if err := fill(f, field{form.FieldCardNumber, "Card number", false}); err != nil {
			return err
		}
	}
	return nil
}

type field struct {
	name   string
	label  string
	secret bool
}

// fill prompts for each field in turn, starting from its current value.
func fill(f *form.Form, fields ...field) error {
	for _, fl := range fields {
		def := f.Get(fl.name)
		if fl.secret {
			def = ""
		}
		v, err := ask(fl.label, def, fl.secret)
		if err != nil {
			return err
		}
		f.Input(fl.name, v)
	}
	return nil
}

func ask(label, def string, secret bool) (string, error) {
	p := promptui.Prompt{Label: label, Default: def, AllowEdit: true}
	if secret {
		p.Mask = '*'
	}
	return p.Run()
}

// actionsFor lists the menu entries that make sense on the current screen.
func actionsFor(sc app.Screen) []string {
	var acts []string
	switch {
	case sc.Route == router.Login && sc.SignUpVisible:
		acts = append(acts, actSignUp, actShowSignIn)
	case sc.Route == router.Login:
		acts = append(acts, actSignIn, actShowSignUp)
	case sc.Route == "categories":
		acts = append(acts, actOpenCategory)
	case catalog.IsCategory(sc.Route):
		acts = append(acts, actBook)
	case sc.Route == router.Payment:
		acts = append(acts, actChooseMethod, actPay)
	case sc.Route == router.Bookings:
		if !sc.Bookings.Empty() {
			acts = append(acts, actCancelBooking)
		}
		acts = append(acts, actRefresh)
	case sc.Route == router.Contact:
		acts = append(acts, actSendMessage)
	case sc.Route == router.Map:
		acts = append(acts, actSearchMap)
	case sc.Route == router.Settings:
		acts = append(acts, actSaveAccount)
	}

	acts = append(acts, actGoTo, actBack, actForward, actToggleTheme)
	if sc.Nav.LogoutVisible {
		acts = append(acts, actLogout)
	}
	return append(acts, actQuit)
}

// renderScreen writes a plain-text rendition of sc.
func renderScreen(w io.Writer, sc app.Screen) {
	var nav []string
	for _, l := range sc.Nav.Links {
		if !l.Visible {
			continue
		}
		if l.Active {
			nav = append(nav, "["+l.Label+"]")
		} else {
			nav = append(nav, l.Label)
		}
	}
	fmt.Fprintf(w, "\n%s   (%s theme)\n", strings.Join(nav, " | "), sc.Theme)
	fmt.Fprintf(w, "== %s ==\n", sc.Page)

	switch {
	case sc.Route == router.Login:
		if sc.SignUpVisible {
			fmt.Fprintln(w, "Create a local account.")
		} else {
			fmt.Fprintln(w, "Sign in to browse and book events.")
		}
	case sc.Route == router.Bookings:
		if sc.Bookings.Empty() {
			fmt.Fprintln(w, sc.Bookings.Message)
			break
		}
		for _, r := range sc.Bookings.Rows {
			fmt.Fprintf(w, "#%d  %s (%s)  %s <%s>  %s  %s\n",
				r.ID, r.Event, r.Category, r.Name, r.Email, r.BookedOn, r.Status)
		}
	case sc.Route == "categories":
		for _, c := range sc.Categories {
			fmt.Fprintf(w, "- %s\n", c.Label)
		}
	case catalog.IsCategory(sc.Route):
		if len(sc.Events) == 0 {
			fmt.Fprintln(w, "No events in this category yet.")
		}
		for _, e := range sc.Events {
			fmt.Fprintf(w, "* %s, %s, %s, %s\n", e.Title, e.When, e.Venue, e.Price)
		}
	case sc.Route == router.Payment:
		if sc.Payment == nil {
			fmt.Fprintln(w, "No pending booking.")
		} else {
			fmt.Fprintf(w, "%s (%s) for %s <%s>\n", sc.Payment.Event, catalog.Label(sc.Payment.Category), sc.Payment.Name, sc.Payment.Email)
		}
		switch {
		case sc.PaymentRows.UPI:
			fmt.Fprintln(w, "Paying by UPI.")
		case sc.PaymentRows.Card:
			fmt.Fprintln(w, "Paying by card.")
		case sc.PaymentRows.NetBanking:
			fmt.Fprintln(w, "Paying by net banking.")
		}
	case sc.Route == router.Map:
		if sc.MapURL != "" {
			fmt.Fprintf(w, "Map: %s\n", sc.MapURL)
		} else {
			fmt.Fprintln(w, "Search for a building or venue.")
		}
	}
}

func printToasts(w io.Writer, toasts []app.Toast) {
	for _, t := range toasts {
		fmt.Fprintf(w, "[%s] %s\n", t.Kind, t.Message)
	}
}
