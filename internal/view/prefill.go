package view

import (
	"github.com/Shivanand-hulikatti/event-ease/internal/form"
	"github.com/Shivanand-hulikatti/event-ease/internal/model"
)

// Prefill copies the account name and email into every empty name/email
// field. Fields that already hold a value are left alone.
func Prefill(account model.AccountDetails, forms ...*form.Form) {
	for _, f := range forms {
		if f == nil {
			continue
		}
		fill(f, form.FieldName, account.Name)
		fill(f, form.FieldEmail, account.Email)
	}
}

func fill(f *form.Form, field, value string) {
	if value == "" || !f.Has(field) || f.Get(field) != "" {
		return
	}
	f.Set(field, value)
}

// PaymentSummary is what the payment page shows about the pending booking.
type PaymentSummary struct {
	Category string
	Event    string
	Name     string
	Email    string
}

// SummaryFor returns the payment summary, or false with no pending booking.
func SummaryFor(p *model.PendingBooking) (PaymentSummary, bool) {
	if p == nil {
		return PaymentSummary{}, false
	}
	return PaymentSummary{Category: p.Category, Event: p.Event, Name: p.Name, Email: p.Email}, true
}
