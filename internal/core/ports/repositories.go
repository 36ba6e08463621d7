// Package ports declares the contracts the core depends on. Storage and
// messaging adapters implement them; the use cases never see a concrete
// driver.
package ports

import (
	"context"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
)

// CustomerRepository abstracts customer persistence. All reads exclude
// soft-deleted rows.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByCPF(ctx context.Context, cpf string) (*domain.Customer, error)
	// ExistsDuplicate reports whether a non-deleted customer already holds
	// the given (email, cpf) pair.
	ExistsDuplicate(ctx context.Context, email, cpf string) (bool, error)
	// Delete soft-deletes: the row is stamped, not removed.
	Delete(ctx context.Context, id string) error
}

// ProductRepository abstracts product persistence. All reads exclude
// soft-deleted rows.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// GetByIDs returns exactly the found subset; callers must treat a
	// missing id as an error condition themselves.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// OrderRepository abstracts order persistence. Reads resolve the owning
// customer and exclude soft-deleted rows.
type OrderRepository interface {
	// List returns every live order sorted by fulfillment-board rank, then
	// creation time ascending.
	List(ctx context.Context) ([]*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, id string, patch OrderPatch) (*domain.Order, error)
	// UpdateStatus performs a conditional write: the status column moves
	// from "from" to "to" only if it still equals "from" at write time.
	// Returns domain.ErrStatusConflict when the guard fails and
	// domain.ErrNotFound when the order does not exist.
	UpdateStatus(ctx context.Context, id string, from, to domain.Status) error
	Delete(ctx context.Context, id string) error
}

// ProductPatch is a partial product update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *domain.Category
	Price       *float64
	ImageURL    *string
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Price == nil && p.ImageURL == nil
}

// OrderPatch is a partial order update. Identity and the owning customer
// are deliberately outside the update surface; the total is never patched
// because it is frozen at creation.
type OrderPatch struct {
	Status *domain.Status
	Notes  *string
}

func (p OrderPatch) Empty() bool {
	return p.Status == nil && p.Notes == nil
}
