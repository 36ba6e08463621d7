package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
)

// CustomerStore implements ports.CustomerRepository.
type CustomerStore struct {
	db *sql.DB
}

func NewCustomerStore(store *Store) *CustomerStore {
	return &CustomerStore{db: store.db}
}

func (s *CustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	const q = `
		INSERT INTO customers (id, name, email, cpf, created_at)
		VALUES (?, ?, ?, ?, ?)`

	var cpf any
	if customer.CPF != nil {
		cpf = customer.CPF.String()
	}

	_, err := s.db.ExecContext(ctx, q,
		customer.ID,
		customer.Name,
		customer.Email.String(),
		cpf,
		formatTime(customer.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: create customer %q: %w", customer.ID, err)
	}
	return nil
}

func (s *CustomerStore) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
		SELECT id, name, email, cpf, created_at
		FROM   customers
		WHERE  email = ? AND deleted_at IS NULL`

	return s.scanOne(ctx, q, email)
}

func (s *CustomerStore) GetByCPF(ctx context.Context, cpf string) (*domain.Customer, error) {
	const q = `
		SELECT id, name, email, cpf, created_at
		FROM   customers
		WHERE  cpf = ? AND deleted_at IS NULL`

	return s.scanOne(ctx, q, cpf)
}

// ExistsDuplicate checks the (email, cpf) pair among live customers. A
// customer registered without a cpf matches only when the candidate also
// has none.
func (s *CustomerStore) ExistsDuplicate(ctx context.Context, email, cpf string) (bool, error) {
	const q = `
		SELECT COUNT(*)
		FROM   customers
		WHERE  email = ? AND IFNULL(cpf, '') = ? AND deleted_at IS NULL`

	var count int
	if err := s.db.QueryRowContext(ctx, q, email, cpf).Scan(&count); err != nil {
		return false, fmt.Errorf("sqlite: check duplicate customer: %w", err)
	}
	return count > 0, nil
}

func (s *CustomerStore) Delete(ctx context.Context, id string) error {
	const q = `
		UPDATE customers
		SET    deleted_at = ?
		WHERE  id = ? AND deleted_at IS NULL`

	res, err := s.db.ExecContext(ctx, q, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("sqlite: delete customer %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: delete customer %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("customer %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *CustomerStore) scanOne(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	row := s.db.QueryRowContext(ctx, query, arg)

	var (
		id, name, rawEmail string
		rawCPF             sql.NullString
		createdAt          string
	)
	err := row.Scan(&id, &name, &rawEmail, &rawCPF, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get customer: %w", err)
	}

	return buildCustomer(id, name, rawEmail, rawCPF, createdAt)
}

// buildCustomer rehydrates the entity through its value-object
// constructors; persisted values were validated on the way in, so failures
// here mean the row was tampered with.
func buildCustomer(id, name, rawEmail string, rawCPF sql.NullString, createdAt string) (*domain.Customer, error) {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, fmt.Errorf("sqlite: customer %q: %w", id, err)
	}

	var cpf *domain.CPF
	if rawCPF.Valid && rawCPF.String != "" {
		parsed, err := domain.NewCPF(rawCPF.String)
		if err != nil {
			return nil, fmt.Errorf("sqlite: customer %q: %w", id, err)
		}
		cpf = &parsed
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &domain.Customer{
		ID:        id,
		Name:      name,
		Email:     email,
		CPF:       cpf,
		CreatedAt: created,
	}, nil
}
