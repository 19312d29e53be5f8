// internal/repository/order_repo.go
package repository

import (
	"context"

	"northwind-orders/internal/domain"
)

// OrderRepository defines the data operations on the order aggregate.
type OrderRepository interface {
	// AddOrder inserts the order and its details in one transaction and
	// returns the identifier generated by the store, or -1 on failure.
	AddOrder(ctx context.Context, order *domain.Order) (int64, error)
	// GetOrder loads an order with its details. A missing order is returned
	// as a shell holding only orderID.
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	// FindOrder is GetOrder with an explicit found flag.
	FindOrder(ctx context.Context, orderID int64) (*domain.Order, bool, error)
	// GetOrders returns a page of shallow orders: id, customer code and
	// employee id only. Orders are sorted by ascending id, so consecutive
	// pages never overlap.
	GetOrders(ctx context.Context, skip, count int) ([]domain.Order, error)
	// RemoveOrder deletes the order and its details. Removing a missing
	// order is not an error.
	RemoveOrder(ctx context.Context, orderID int64) error
	// UpdateOrder overwrites the order header and replaces all its details.
	UpdateOrder(ctx context.Context, order *domain.Order) error
}
