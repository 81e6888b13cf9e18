package app

// ToastKind selects the toast styling.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastWarning ToastKind = "warning"
	ToastError   ToastKind = "error"
)

// Toast is a short-lived message for the user.
type Toast struct {
	Message string
	Kind    ToastKind
}

// User-facing messages.
const (
	msgInitFailed       = "Error initializing application. Some features may not work."
	msgRequiredFields   = "Please fill in all required fields."
	msgBookingFailed    = "Error saving booking. Please try again."
	msgPaymentDone      = "Payment successful! Your booking is confirmed."
	msgContactSent      = "Message sent successfully! We will get back to you soon."
	msgContactFailed    = "Error sending message. Please try again."
	msgBookingCancelled = "Booking cancelled successfully."
	msgCancelFailed     = "Error cancelling booking."
	msgInvalidUPI       = "Please enter a valid UPI ID (e.g., name@bank)"
	msgPasswordMismatch = "Passwords do not match."
	msgAccountExists    = "An account already exists with this email."
	msgAccountCreated   = "Account created. You can log in now."
	msgSignUpFailed     = "Error creating account."
	msgNoSuchAccount    = "No account found for this email."
	msgBadCredentials   = "Invalid credentials."
	msgSignedIn         = "Logged in successfully."
	msgSignInFailed     = "Error logging in."
	msgLoggedOut        = "Logged out."
	msgAccountSaved     = "Account details saved."
	msgAccountFailed    = "Error saving account details."
	msgThemeFailed      = "Error saving theme preference."

	confirmCancelPrompt = "Are you sure you want to cancel this booking?"
)

func (a *App) toast(msg string, kind ToastKind) {
	a.toasts = append(a.toasts, Toast{Message: msg, Kind: kind})
}

// Toasts returns and clears the pending toasts, oldest first.
func (a *App) Toasts() []Toast {
	out := a.toasts
	a.toasts = nil
	return out
}
