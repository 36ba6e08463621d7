package domain

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	cpfPattern   = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
)

// Email is a validated e-mail address. The zero value is invalid; obtain one
// through NewEmail.
type Email struct {
	value string
}

// NewEmail validates the local@domain.tld shape: a single "@", at least one
// "." in the domain part, no whitespace anywhere.
func NewEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, NewValidationError("email", "must be a valid e-mail address")
	}
	return Email{value: raw}, nil
}

func (e Email) String() string {
	return e.value
}

// CPF is a validated Brazilian tax id in its punctuated form
// (e.g. "123.456.789-00"). Unpunctuated digit strings are rejected.
type CPF struct {
	value string
}

func NewCPF(raw string) (CPF, error) {
	if !cpfPattern.MatchString(raw) {
		return CPF{}, NewValidationError("cpf", "must match the 000.000.000-00 format")
	}
	return CPF{value: raw}, nil
}

func (c CPF) String() string {
	return c.value
}

// Total is an order total computed from its priced line items. It is the
// single source of truth for the amount: built once at order creation and
// never recomputed or mutated afterwards.
type Total struct {
	value float64
}

func NewTotal(items []OrderItem) (Total, error) {
	var sum float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return Total{}, NewValidationError("items", "quantity must be positive")
		}
		if item.UnitPrice < 0 {
			return Total{}, NewValidationError("items", "unit price must not be negative")
		}
		sum += item.Subtotal()
	}
	return Total{value: sum}, nil
}

func (t Total) Value() float64 {
	return t.value
}
