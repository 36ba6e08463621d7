package httpx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/core/usecase"
)

type CustomerService interface {
	Register(ctx context.Context, input usecase.RegisterCustomerInput) (*usecase.CustomerDTO, error)
	GetByEmail(ctx context.Context, email string) (*usecase.CustomerDTO, error)
	GetByCPF(ctx context.Context, cpf string) (*usecase.CustomerDTO, error)
	Deactivate(ctx context.Context, id string) error
}

type CustomerHandler struct {
	customers CustomerService
}

func NewCustomerHandler(customers CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	customer, err := h.customers.Register(r.Context(), usecase.RegisterCustomerInput{
		Name:  req.Name,
		Email: req.Email,
		CPF:   req.CPF,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

// Lookup finds a customer by email or cpf query parameter, one of which is
// required.
func (h *CustomerHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	cpf := r.URL.Query().Get("cpf")

	switch {
	case email != "":
		customer, err := h.customers.GetByEmail(r.Context(), email)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, customer)
	case cpf != "":
		customer, err := h.customers.GetByCPF(r.Context(), cpf)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, customer)
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "email or cpf query parameter is required")
	}
}

func (h *CustomerHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
