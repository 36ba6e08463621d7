// Package usecase holds the application services. They orchestrate the
// repository and event ports and speak plain data-transfer shapes to the
// driving layer; domain value objects never cross this boundary outward.
package usecase

import (
	"time"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
)

type CustomerDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf,omitempty"`
}

type ProductDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OrderItemDTO struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderDTO struct {
	ID        string         `json:"id"`
	Customer  *CustomerDTO   `json:"customer,omitempty"`
	Items     []OrderItemDTO `json:"items"`
	Total     float64        `json:"total"`
	Notes     string         `json:"notes,omitempty"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

type RegisterCustomerInput struct {
	Name  string
	Email string
	CPF   string
}

type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	ImageURL    string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	ImageURL    *string
}

type CreateOrderItemInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	CustomerID string
	// Status must be absent or the initial status; callers may not
	// pre-assign a later one.
	Status string
	Notes  string
	Items  []CreateOrderItemInput
}

type UpdateOrderInput struct {
	Status *string
	Notes  *string
}

func customerToDTO(c *domain.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	dto := &CustomerDTO{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email.String(),
	}
	if c.CPF != nil {
		dto.CPF = c.CPF.String()
	}
	return dto
}

func productToDTO(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func orderToDTO(o *domain.Order) *OrderDTO {
	items := make([]OrderItemDTO, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return &OrderDTO{
		ID:        o.ID,
		Customer:  customerToDTO(o.Customer),
		Items:     items,
		Total:     o.Total.Value(),
		Notes:     o.Notes,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
}
