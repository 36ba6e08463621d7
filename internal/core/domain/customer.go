package domain

import (
	"strings"
	"time"
)

// Customer is registered at the counter so orders can be attached to a
// person. CPF is optional; e-mail is not.
type Customer struct {
	ID        string
	Name      string
	Email     Email
	CPF       *CPF
	CreatedAt time.Time
	DeletedAt *time.Time
}

func NewCustomer(id, name string, email Email, cpf *CPF) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "is required")
	}
	return &Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		CPF:       cpf,
		CreatedAt: time.Now().UTC(),
	}, nil
}
