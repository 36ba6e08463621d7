package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/infra/httpx/middlewares"
	"github.com/karineriquena/fiap-soat1-tech-challenge/internal/pkg/metrics"
)

// NewRouter assembles the API surface. m may be nil to disable metrics
// (tests).
func NewRouter(customers *CustomerHandler, products *ProductHandler, orders *OrderHandler, m *metrics.ServerMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(middlewares.CollectMetrics(m))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", customers.Register)
			r.Get("/", customers.Lookup)
			r.Delete("/{id}", customers.Deactivate)
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", products.Create)
			r.Get("/category/{category}", products.ListByCategory)
			r.Get("/{id}", products.Get)
			r.Patch("/{id}", products.Update)
			r.Delete("/{id}", products.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Post("/", orders.Create)
			r.Get("/{id}", orders.Get)
			r.Patch("/{id}", orders.Update)
			r.Patch("/{id}/payment", orders.ConfirmPayment)
			r.Delete("/{id}", orders.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
