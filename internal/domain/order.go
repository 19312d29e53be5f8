// internal/domain/order.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// ShippingAddress is the destination of an order.
type ShippingAddress struct {
	Address    string  `json:"address"`
	City       string  `json:"city"`
	Region     *string `json:"region,omitempty"` // Optional, nil means "no region"
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}

// Order is the aggregate root: an order header with its owned detail lines.
type Order struct {
	ID              int64           `json:"id"` // Assigned by the store on creation
	Customer        Customer        `json:"customer"`
	Employee        Employee        `json:"employee"`
	Shipper         Shipper         `json:"shipper"`
	OrderDate       *time.Time      `json:"order_date,omitempty"`
	RequiredDate    *time.Time      `json:"required_date,omitempty"`
	ShippedDate     *time.Time      `json:"shipped_date,omitempty"`
	Freight         decimal.Decimal `json:"freight"`
	ShipName        string          `json:"ship_name"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	OrderDetails    []OrderDetail   `json:"order_details"`
}

// OrderDetail is a single order line. OrderID refers back to the owning
// order without owning it.
type OrderDetail struct {
	OrderID   int64           `json:"order_id"`
	Product   Product         `json:"product"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Discount  float64         `json:"discount"`
}

// NewOrder creates an order shell that carries only its identifier.
func NewOrder(id int64) *Order {
	return &Order{
		ID:           id,
		OrderDetails: []OrderDetail{},
	}
}

// NewOrderDetail creates a detail line bound to the given order.
func NewOrderDetail(order *Order) OrderDetail {
	return OrderDetail{OrderID: order.ID}
}

// IsPopulated reports whether the order header was loaded from the store.
// A shell returned for a missing order has no customer, employee or shipper.
// Callers of GetOrder use it in place of FindOrder's found flag.
func (o *Order) IsPopulated() bool {
	return o.Customer.Code != "" || o.Employee.ID != 0 || o.Shipper.ID != 0
}
