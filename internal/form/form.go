// Package form holds the field-level behaviour of the booking, payment,
// contact, map and account forms: values, input formatting and shape checks.
package form

import (
	"regexp"
	"strings"
)

// Field names shared by several forms.
const (
	FieldCategory   = "category"
	FieldEvent      = "event"
	FieldName       = "name"
	FieldEmail      = "email"
	FieldMessage    = "message"
	FieldMethod     = "method"
	FieldUPI        = "upiId"
	FieldCardNumber = "cardNumber"
	FieldQuery      = "mapQuery"
	FieldPassword   = "password"
	FieldConfirm    = "confirmPassword"
)

// Form is an ordered set of named text fields.
type Form struct {
	ID     string
	order  []string
	values map[string]string
	input  map[string]func(string) string
}

// New returns an empty form with the given fields.
func New(id string, fields ...string) *Form {
	f := &Form{
		ID:     id,
		order:  append([]string(nil), fields...),
		values: make(map[string]string, len(fields)),
		input:  map[string]func(string) string{FieldCardNumber: FormatCardNumber},
	}
	return f
}

// Has reports whether the form declares field.
func (f *Form) Has(field string) bool {
	for _, n := range f.order {
		if n == field {
			return true
		}
	}
	return false
}

// Get returns the current value of field.
func (f *Form) Get(field string) string { return f.values[field] }

// Set stores value verbatim. Unknown fields are ignored.
func (f *Form) Set(field, value string) {
	if f.Has(field) {
		f.values[field] = value
	}
}

// Input stores value as typed by the user, applying the field's input
// formatter, and returns what the field now shows.
func (f *Form) Input(field, value string) string {
	if fn, ok := f.input[field]; ok {
		value = fn(value)
	}
	f.Set(field, value)
	return f.values[field]
}

// Values returns a copy of all field values.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Reset clears every field.
func (f *Form) Reset() {
	clear(f.values)
}

var nonDigits = regexp.MustCompile(`\D`)

// FormatCardNumber keeps at most 19 digits and puts a space after every
// group of four that is followed by another digit. It does not validate.
func FormatCardNumber(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) > 19 {
		digits = digits[:19]
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var upiShape = regexp.MustCompile(`^[\w.\-]{2,}@[A-Za-z]{2,}$`)

// ValidUPI reports whether id looks like local@bank. Empty input is not
// checked and reports true.
func ValidUPI(id string) bool {
	id = strings.TrimSpace(id)
	return id == "" || upiShape.MatchString(id)
}

// PaymentRows says which payment detail row is visible.
type PaymentRows struct {
	UPI        bool
	Card       bool
	NetBanking bool
}

// RowsFor returns the visible detail row for a payment method.
func RowsFor(method string) PaymentRows {
	return PaymentRows{
		UPI:        method == "upi",
		Card:       method == "card",
		NetBanking: method == "netbanking",
	}
}
