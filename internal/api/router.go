// internal/api/router.go
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"northwind-orders/internal/api/handler"
)

// Pinger reports whether the backing store is reachable.
// *sqlx.DB implements this.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(orderHandler *handler.OrderHandler, db Pinger, metrics http.Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Error("Health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", metrics)

	// Order API routes
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/", orderHandler.ListOrders)
		r.Get("/{orderID}", orderHandler.GetOrder)
		r.Put("/{orderID}", orderHandler.UpdateOrder)
		r.Delete("/{orderID}", orderHandler.DeleteOrder)
	})

	return r
}
