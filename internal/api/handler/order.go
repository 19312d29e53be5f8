// internal/api/handler/order.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"northwind-orders/internal/api/types"
	"northwind-orders/internal/domain"
	"northwind-orders/internal/repository"
	"northwind-orders/internal/util" // For custom errors
)

// DefaultTimeout bounds the handling of a single request.
const DefaultTimeout = 30 * time.Second

const (
	defaultSkip  = 0
	defaultCount = 10
)

// OrderHandler handles HTTP requests related to order operations.
type OrderHandler struct {
	repo   repository.OrderRepository
	logger *slog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(repo repository.OrderRepository, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		repo:   repo,
		logger: logger,
	}
}

// Helper function to send JSON responses.
func (h *OrderHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *OrderHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsConstraintViolation(err):
		statusCode = http.StatusConflict
		message = "Order conflicts with existing data"
		h.logger.Warn("Constraint violation", "error", err)
	default:
		h.logger.Error("Unhandled repository error", "error", err)
	}

	h.respondWithJSON(w, statusCode, types.ErrorResponse{Error: message})
}

// CreateOrder handles the create order request.
// POST /orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOrderRequest(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	orderID, err := h.repo.AddOrder(r.Context(), req.ToDomain(0))
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusCreated, types.CreatedResponse{ID: orderID})
}

// GetOrder handles the get order request.
// GET /orders/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	order, found, err := h.repo.FindOrder(r.Context(), orderID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if !found {
		h.respondWithError(w, fmt.Errorf("order %d: %w", orderID, util.ErrNotFound))
		return
	}

	h.respondWithJSON(w, http.StatusOK, order)
}

// ListOrders handles the list orders request.
// GET /orders?skip=0&count=10
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", defaultSkip)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	count, err := queryInt(r, "count", defaultCount)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	orders, err := h.repo.GetOrders(r.Context(), skip, count)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.PaginatedResponse[domain.Order]{
		Data:  orders,
		Skip:  skip,
		Count: count,
	})
}

// UpdateOrder handles the update order request. The id in the path wins
// over any id implied by the body.
// PUT /orders/{orderID}
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	req, err := decodeOrderRequest(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.repo.UpdateOrder(r.Context(), req.ToDomain(orderID)); err != nil {
		h.respondWithError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteOrder handles the delete order request. Deleting a missing order
// succeeds.
// DELETE /orders/{orderID}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := orderIDParam(r)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	if err := h.repo.RemoveOrder(r.Context(), orderID); err != nil {
		h.respondWithError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeOrderRequest(r *http.Request) (*OrderRequest, error) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: malformed order body", util.ErrInvalidInput)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func orderIDParam(r *http.Request) (int64, error) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		return 0, fmt.Errorf("%w: order id must be a positive integer", util.ErrInvalidInput)
	}
	return orderID, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", util.ErrInvalidInput, name)
	}
	return v, nil
}
