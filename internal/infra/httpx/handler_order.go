package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/usecase"
)

// OrderService is what the order handlers need from the application layer.
type OrderService interface {
	List(ctx context.Context) ([]*usecase.OrderDTO, error)
	Get(ctx context.Context, id string) (*usecase.OrderDTO, error)
	Create(ctx context.Context, input usecase.CreateOrderInput) (*usecase.OrderDTO, error)
	Update(ctx context.Context, id string, input usecase.UpdateOrderInput) (*usecase.OrderDTO, error)
	ConfirmPayment(ctx context.Context, id string) (*usecase.OrderDTO, error)
	Delete(ctx context.Context, id string) error
}

type OrderHandler struct {
	orders OrderService
}

func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List returns the fulfillment board: live orders sorted by status rank and
// creation time.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if orders == nil {
		orders = []*usecase.OrderDTO{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "items are required")
		return
	}

	input := usecase.CreateOrderInput{
		CustomerID: req.CustomerID,
		Status:     req.Status,
		Notes:      req.Notes,
		Items:      make([]usecase.CreateOrderItemInput, len(req.Items)),
	}
	for i, item := range req.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_item", "product_id and a positive quantity are required")
			return
		}
		input.Items[i] = usecase.CreateOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	slog.InfoContext(r.Context(), "creating order", "items", len(input.Items), "customer_id", req.CustomerID)

	order, err := h.orders.Create(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	order, err := h.orders.Update(r.Context(), chi.URLParam(r, "id"), usecase.UpdateOrderInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ConfirmPayment is the webhook target for the external payment collaborator.
func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	slog.InfoContext(r.Context(), "confirming order payment", "order_id", id)

	order, err := h.orders.ConfirmPayment(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
