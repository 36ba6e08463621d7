package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
)

// CustomerService handles registration and lookups. Soft-deleted customers
// are invisible to every operation here.
type CustomerService struct {
	customers ports.CustomerRepository
}

func NewCustomerService(customers ports.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// Register validates the input and refuses to create a second customer with
// the same (email, cpf) pair.
func (s *CustomerService) Register(ctx context.Context, input RegisterCustomerInput) (*CustomerDTO, error) {
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	var cpf *domain.CPF
	if input.CPF != "" {
		parsed, err := domain.NewCPF(input.CPF)
		if err != nil {
			return nil, err
		}
		cpf = &parsed
	}

	customer, err := domain.NewCustomer(uuid.NewString(), input.Name, email, cpf)
	if err != nil {
		return nil, err
	}

	duplicate, err := s.customers.ExistsDuplicate(ctx, input.Email, input.CPF)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, domain.NewBusinessRuleError("a customer with this email and cpf already exists")
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customerToDTO(customer), nil
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (*CustomerDTO, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return customerToDTO(customer), nil
}

func (s *CustomerService) GetByCPF(ctx context.Context, cpf string) (*CustomerDTO, error) {
	customer, err := s.customers.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	return customerToDTO(customer), nil
}

// Deactivate is the administrative soft delete.
func (s *CustomerService) Deactivate(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}
