package domain

import "time"

// Status is the order lifecycle state. The normal flow only ever moves
// forward: payment_pending → received → preparing → ready → completed.
type Status string

const (
	StatusPaymentPending Status = "payment_pending"
	StatusReceived       Status = "received"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusCompleted      Status = "completed"
)

// statusSequence is the legal forward-transition order.
var statusSequence = []Status{
	StatusPaymentPending,
	StatusReceived,
	StatusPreparing,
	StatusReady,
	StatusCompleted,
}

func (s Status) Valid() bool {
	for _, known := range statusSequence {
		if s == known {
			return true
		}
	}
	return false
}

// Next returns the status one step ahead in the sequence. ok is false for
// the terminal status and for unknown values.
func (s Status) Next() (Status, bool) {
	for i, known := range statusSequence[:len(statusSequence)-1] {
		if s == known {
			return statusSequence[i+1], true
		}
	}
	return "", false
}

// SortRank is the fulfillment-board display rank: orders the kitchen should
// look at first come first. It is deliberately separate from the transition
// sequence above; payment_pending orders fall in the catch-all bucket.
func (s Status) SortRank() int {
	switch s {
	case StatusReceived:
		return 0
	case StatusPreparing:
		return 1
	case StatusReady:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 4
	}
}

// OrderItem is one product-quantity-price tuple within an order. The unit
// price is captured from the product at order-creation time and never
// re-derived, so later price changes do not touch existing orders.
type OrderItem struct {
	ProductID string
	Quantity  int
	UnitPrice float64
}

func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Order aggregates the line items, the frozen total and the lifecycle
// status. CustomerID is optional: walk-in orders are anonymous. Customer is
// the resolved view of CustomerID, populated by reads that join customer
// data.
type Order struct {
	ID         string
	CustomerID string
	Customer   *Customer
	Items      []OrderItem
	Total      Total
	Notes      string
	Status     Status
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

// NewOrder prices nothing by itself: items must already carry their unit
// prices. It validates the items and freezes the total.
func NewOrder(id, customerID string, items []OrderItem, notes string) (*Order, error) {
	if len(items) == 0 {
		return nil, NewValidationError("items", "at least one item is required")
	}
	total, err := NewTotal(items)
	if err != nil {
		return nil, err
	}
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Items:      items,
		Total:      total,
		Notes:      notes,
		Status:     StatusPaymentPending,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
