package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/domain"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/ports"
)

// OrderService is the order lifecycle core: server-side pricing at creation
// and the guarded payment-status advance.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	events   ports.EventPublisher
}

func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, events ports.EventPublisher) *OrderService {
	return &OrderService{orders: orders, products: products, events: events}
}

// List returns every live order in fulfillment-board order: status rank
// first (received, preparing, ready, completed, everything else), creation
// time ascending within the same rank.
func (s *OrderService) List(ctx context.Context) ([]*OrderDTO, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*OrderDTO, len(orders))
	for i, order := range orders {
		dtos[i] = orderToDTO(order)
	}
	return dtos, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*OrderDTO, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return orderToDTO(order), nil
}

// Create builds an order from product references. Prices always come from
// the product store at this moment, never from the caller, and are frozen
// into the line items. A referenced product that cannot be found aborts the
// whole request before anything is written.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if input.Status != "" && input.Status != string(domain.StatusPaymentPending) {
		return nil, domain.NewBusinessRuleError("status must not be informed on creation")
	}

	ids := make([]string, 0, len(input.Items))
	seen := make(map[string]bool, len(input.Items))
	for _, item := range input.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	priceByID := make(map[string]float64, len(products))
	for _, product := range products {
		priceByID[product.ID] = product.Price
	}

	items := make([]domain.OrderItem, len(input.Items))
	for i, item := range input.Items {
		price, ok := priceByID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %q: %w", item.ProductID, domain.ErrNotFound)
		}
		items[i] = domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		}
	}

	order, err := domain.NewOrder(uuid.NewString(), input.CustomerID, items, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, ports.OrderEvent{
		Name:    ports.EventOrderCreated,
		OrderID: order.ID,
		Status:  string(order.Status),
		Total:   order.Total.Value(),
	})

	return orderToDTO(order), nil
}

// Update applies a general-purpose partial patch. It does not recompute the
// total and does not enforce status sequencing; the guarded advance lives in
// ConfirmPayment.
func (s *OrderService) Update(ctx context.Context, id string, input UpdateOrderInput) (*OrderDTO, error) {
	patch := ports.OrderPatch{Notes: input.Notes}
	if input.Status != nil {
		status := domain.Status(*input.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("status", "unknown status")
		}
		patch.Status = &status
	}
	if patch.Empty() {
		return nil, domain.NewBusinessRuleError("update payload must not be empty")
	}

	if _, err := s.orders.GetByID(ctx, id); err != nil {
		return nil, err
	}

	order, err := s.orders.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return orderToDTO(order), nil
}

// ConfirmPayment advances the order exactly one step, from payment_pending
// to received. The status is re-read first and the write is conditioned on
// it still being payment_pending, so two concurrent confirmations cannot
// both succeed.
func (s *OrderService) ConfirmPayment(ctx context.Context, id string) (*OrderDTO, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusPaymentPending {
		return nil, domain.NewBusinessRuleError("order has already been paid")
	}

	err = s.orders.UpdateStatus(ctx, id, domain.StatusPaymentPending, domain.StatusReceived)
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return nil, domain.NewBusinessRuleError("order has already been paid")
		}
		return nil, err
	}

	updated, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, ports.OrderEvent{
		Name:    ports.EventOrderPaymentConfirmed,
		OrderID: updated.ID,
		Status:  string(updated.Status),
		Total:   updated.Total.Value(),
	})

	return orderToDTO(updated), nil
}

// Delete soft-deletes the order; it disappears from all default reads.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if _, err := s.orders.GetByID(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// publish is best-effort: a broker outage must not fail the order flow.
func (s *OrderService) publish(ctx context.Context, event ports.OrderEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish order event",
			"event", event.Name, "order_id", event.OrderID, "error", err)
	}
}
