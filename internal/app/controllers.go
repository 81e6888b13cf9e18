package app

import (
	"context"
	"errors"
	"strings"

	"github.com/Shivanand-hulikatti/event-ease/internal/auth"
	"github.com/Shivanand-hulikatti/event-ease/internal/form"
	"github.com/Shivanand-hulikatti/event-ease/internal/model"
	"github.com/Shivanand-hulikatti/event-ease/internal/router"
	"github.com/Shivanand-hulikatti/event-ease/internal/service"
	"github.com/Shivanand-hulikatti/event-ease/internal/view"
)

// SubmitBooking saves the booking form, keeps it as the pending booking
// and moves on to the payment page.
func (a *App) SubmitBooking(ctx context.Context) error {
	f := a.forms[FormBooking]
	req := model.CreateBookingRequest{
		Category: f.Get(form.FieldCategory),
		Event:    f.Get(form.FieldEvent),
		Name:     f.Get(form.FieldName),
		Email:    f.Get(form.FieldEmail),
	}

	b, err := a.bookings.AddBooking(ctx, req)
	if err != nil {
		a.log.Printf("save booking: %v", err)
		if service.IsValidation(err) {
			a.toast(msgRequiredFields, ToastWarning)
		} else {
			a.toast(msgBookingFailed, ToastError)
		}
		return err
	}

	pending := model.PendingBooking{
		Category: b.Category,
		Event:    b.Event,
		Name:     b.Name,
		Email:    b.Email,
		ID:       b.ID,
	}
	if err := a.prefs.SetPendingBooking(ctx, pending); err != nil {
		a.log.Printf("save pending booking %d: %v", b.ID, err)
	}
	a.Navigate(ctx, router.Payment)
	if a.screen.Route == router.Payment && a.screen.Payment == nil {
		s, _ := view.SummaryFor(&pending)
		a.screen.Payment = &s
	}
	return nil
}

// SelectPaymentMethod shows the detail row of the chosen method.
func (a *App) SelectPaymentMethod(method string) form.PaymentRows {
	a.forms[FormPayment].Set(form.FieldMethod, method)
	a.screen.PaymentRows = form.RowsFor(method)
	return a.screen.PaymentRows
}

// CheckUPI runs the UPI shape check when the field loses focus. It only
// warns; payment can still be submitted.
func (a *App) CheckUPI() bool {
	if form.ValidUPI(a.forms[FormPayment].Get(form.FieldUPI)) {
		return true
	}
	a.toast(msgInvalidUPI, ToastWarning)
	return false
}

// SubmitPayment simulates payment: it confirms at once, drops the pending
// booking and returns home after the processing delay.
func (a *App) SubmitPayment(ctx context.Context) error {
	a.toast(msgPaymentDone, ToastSuccess)
	if err := a.prefs.ClearPendingBooking(ctx); err != nil {
		a.log.Printf("clear pending booking: %v", err)
	}
	a.screen.Payment = nil

	if err := a.sleep(ctx, a.paymentDelay); err != nil {
		return err
	}
	a.Navigate(ctx, router.Home)
	return nil
}

// SubmitContact stores the contact form and clears it in place.
func (a *App) SubmitContact(ctx context.Context) error {
	f := a.forms[FormContact]
	_, err := a.bookings.AddContact(ctx, model.CreateContactRequest{
		Name:    f.Get(form.FieldName),
		Email:   f.Get(form.FieldEmail),
		Message: f.Get(form.FieldMessage),
	})
	if err != nil {
		a.log.Printf("save contact submission: %v", err)
		if service.IsValidation(err) {
			a.toast(msgRequiredFields, ToastWarning)
		} else {
			a.toast(msgContactFailed, ToastError)
		}
		return err
	}
	a.toast(msgContactSent, ToastSuccess)
	f.Reset()
	return nil
}

// SearchMap points the campus map at query. An empty query leaves the map
// unchanged.
func (a *App) SearchMap(query string) string {
	a.forms[FormMap].Set(form.FieldQuery, query)
	if u := form.MapSearchURL(query); u != "" {
		a.screen.MapURL = u
	}
	return a.screen.MapURL
}

// CancelBooking deletes a booking after the user confirms and re-renders
// the list. Declining is not an error.
func (a *App) CancelBooking(ctx context.Context, id int64) error {
	if !a.confirm(confirmCancelPrompt) {
		return nil
	}
	if _, err := a.bookings.DeleteBooking(ctx, id); err != nil {
		a.log.Printf("delete booking %d: %v", id, err)
		a.toast(msgCancelFailed, ToastError)
		return err
	}
	a.toast(msgBookingCancelled, ToastSuccess)
	a.RefreshBookings(ctx)
	return nil
}

// ShowSignUp switches the login page to the sign-up form.
func (a *App) ShowSignUp() { a.screen.SignUpVisible = true }

// ShowSignIn switches the login page to the sign-in form.
func (a *App) ShowSignIn() { a.screen.SignUpVisible = false }

// SignUp registers the account in the sign-up form. On success the sign-in
// form is shown with the email filled in.
func (a *App) SignUp(ctx context.Context) error {
	f := a.forms[FormSignUp]
	name := strings.TrimSpace(f.Get(FieldSignupName))
	email := auth.NormalizeEmail(f.Get(FieldSignupEmail))
	password := f.Get(form.FieldPassword)

	if err := auth.ConfirmPassword(password, f.Get(form.FieldConfirm)); err != nil {
		a.toast(msgPasswordMismatch, ToastError)
		return err
	}

	if _, err := a.auth.SignUp(ctx, name, email, password); err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountExists):
			a.toast(msgAccountExists, ToastWarning)
		default:
			a.log.Printf("sign up %s: %v", email, err)
			a.toast(msgSignUpFailed, ToastError)
		}
		return err
	}

	a.toast(msgAccountCreated, ToastSuccess)
	a.ShowSignIn()
	a.forms[FormSignIn].Set(FieldLoginEmail, email)
	return nil
}

// SignIn checks the sign-in form and opens the settings page on success.
func (a *App) SignIn(ctx context.Context) error {
	f := a.forms[FormSignIn]
	email := auth.NormalizeEmail(f.Get(FieldLoginEmail))

	_, err := a.auth.SignIn(ctx, email, f.Get(FieldLoginPassword))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNoSuchAccount):
			a.toast(msgNoSuchAccount, ToastWarning)
		case errors.Is(err, auth.ErrInvalidCredentials):
			a.toast(msgBadCredentials, ToastError)
		default:
			a.log.Printf("sign in %s: %v", email, err)
			a.toast(msgSignInFailed, ToastError)
		}
		return err
	}

	a.toast(msgSignedIn, ToastSuccess)
	a.Navigate(ctx, router.Settings)
	a.loadAccountForm(ctx)
	return nil
}

// Logout ends the session and goes home, which the gate turns into the
// login page.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Printf("logout: %v", err)
		return err
	}
	a.toast(msgLoggedOut, ToastSuccess)
	a.Navigate(ctx, router.Home)
	return nil
}

// SaveAccount stores the account form and prefills the other forms.
func (a *App) SaveAccount(ctx context.Context) error {
	f := a.forms[FormAccount]
	acct := model.AccountDetails{
		Name:  strings.TrimSpace(f.Get(FieldAccName)),
		Email: strings.TrimSpace(f.Get(FieldAccEmail)),
	}
	if err := a.prefs.SetAccount(ctx, acct); err != nil {
		a.log.Printf("save account details: %v", err)
		a.toast(msgAccountFailed, ToastError)
		return err
	}
	view.Prefill(acct, a.forms[FormBooking], a.forms[FormContact])
	a.toast(msgAccountSaved, ToastSuccess)
	return nil
}
