package domain

import (
	"strings"
	"time"
)

// Category is the menu section a product belongs to. The set is closed.
type Category string

const (
	CategorySnack   Category = "snack"
	CategorySide    Category = "side"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
)

func (c Category) Valid() bool {
	switch c {
	case CategorySnack, CategorySide, CategoryDrink, CategoryDessert:
		return true
	}
	return false
}

// ParseCategory validates a raw category string.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", NewValidationError("category", "must be one of snack, side, drink, dessert")
	}
	return c, nil
}

// Product is a menu entry. Price here is the current price: order line items
// copy it at order-creation time instead of referencing it.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Price       float64
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func NewProduct(id, name, description string, category Category, price float64, imageURL string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "is required")
	}
	if !category.Valid() {
		return nil, NewValidationError("category", "must be one of snack, side, drink, dessert")
	}
	if price < 0 {
		return nil, NewValidationError("price", "must not be negative")
	}
	now := time.Now().UTC()
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
