package ports

import "context"

// Event names published on the order lifecycle stream.
const (
	EventOrderCreated          = "order.created"
	EventOrderPaymentConfirmed = "order.payment_confirmed"
)

// OrderEvent is the payload published to the event stream when an order
// changes in a way other systems care about (kitchen display, notifications).
type OrderEvent struct {
	Name    string  `json:"name"`
	OrderID string  `json:"order_id"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
}

// EventPublisher pushes lifecycle events to the outside world. Publishing is
// best-effort from the core's point of view: use cases log failures but do
// not fail the request over them.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
