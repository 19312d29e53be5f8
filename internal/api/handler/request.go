// internal/api/handler/request.go
package handler

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"northwind-orders/internal/domain"
	"northwind-orders/internal/util"
)

// OrderRequest represents the request body for creating or updating an order.
type OrderRequest struct {
	CustomerCode    string                 `json:"customer_code" validate:"required,max=5"`
	EmployeeID      int64                  `json:"employee_id" validate:"gt=0"`
	ShipperID       int64                  `json:"shipper_id" validate:"gt=0"`
	OrderDate       *time.Time             `json:"order_date"`
	RequiredDate    *time.Time             `json:"required_date"`
	ShippedDate     *time.Time             `json:"shipped_date"`
	Freight         decimal.Decimal        `json:"freight" validate:"gte=0"`
	ShipName        string                 `json:"ship_name" validate:"max=40"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	Details         []OrderLineRequest     `json:"details" validate:"dive"`
}

// OrderLineRequest is one detail line of an OrderRequest.
type OrderLineRequest struct {
	ProductID int64           `json:"product_id" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	Discount  float64         `json:"discount" validate:"gte=0,lte=1"`
}

var validate = newValidator()

// newValidator returns a validator that compares decimal fields as numbers.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks the request and wraps any failure in util.ErrInvalidInput.
func (req *OrderRequest) Validate() error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", util.ErrInvalidInput, err.Error())
	}
	return nil
}

// ToDomain builds the order to persist under orderID.
func (req *OrderRequest) ToDomain(orderID int64) *domain.Order {
	order := domain.NewOrder(orderID)
	order.Customer = domain.Customer{Code: domain.CustomerCode(req.CustomerCode)}
	order.Employee = domain.Employee{ID: req.EmployeeID}
	order.Shipper = domain.Shipper{ID: req.ShipperID}
	order.OrderDate = req.OrderDate
	order.RequiredDate = req.RequiredDate
	order.ShippedDate = req.ShippedDate
	order.Freight = req.Freight
	order.ShipName = req.ShipName
	order.ShippingAddress = req.ShippingAddress

	for _, line := range req.Details {
		detail := domain.NewOrderDetail(order)
		detail.Product = domain.Product{ID: line.ProductID}
		detail.UnitPrice = line.UnitPrice
		detail.Quantity = line.Quantity
		detail.Discount = line.Discount
		order.OrderDetails = append(order.OrderDetails, detail)
	}
	return order
}
