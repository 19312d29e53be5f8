// internal/repository/sqldb/order_sql.go
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"northwind-orders/internal/domain"
	"northwind-orders/internal/repository"
	"northwind-orders/internal/util"
	"northwind-orders/pkg/db"
)

// Operation names carried by RepositoryError.Op.
const (
	opAddOrder    = "add order"
	opGetOrder    = "get order"
	opGetOrders   = "get orders"
	opRemoveOrder = "remove order"
	opUpdateOrder = "update order"
)

const (
	insertOrderSQL = `INSERT INTO Orders (CustomerID, EmployeeID, OrderDate, RequiredDate, ShippedDate, ShipVia, Freight,
                    ShipName, ShipAddress, ShipCity, ShipRegion, ShipPostalCode, ShipCountry)
              VALUES (:customer_id, :employee_id, :order_date, :required_date, :shipped_date, :ship_via, :freight,
                    :ship_name, :ship_address, :ship_city, :ship_region, :ship_postal_code, :ship_country)`

	updateOrderSQL = `UPDATE Orders
              SET CustomerID = :customer_id, EmployeeID = :employee_id, OrderDate = :order_date,
                  RequiredDate = :required_date, ShippedDate = :shipped_date, ShipVia = :ship_via,
                  Freight = :freight, ShipName = :ship_name, ShipAddress = :ship_address, ShipCity = :ship_city,
                  ShipRegion = :ship_region, ShipPostalCode = :ship_postal_code, ShipCountry = :ship_country
              WHERE OrderID = :order_id`

	deleteOrderSQL = `DELETE FROM Orders WHERE OrderID = :order_id`

	deleteOrderDetailsSQL = `DELETE FROM OrderDetails WHERE OrderID = :order_id`

	insertOrderDetailSQL = `INSERT INTO OrderDetails (OrderID, ProductID, UnitPrice, Quantity, Discount)
              VALUES (:order_id, :product_id, :unit_price, :quantity, :discount)`

	selectOrderSQL = `
		SELECT o.OrderID AS order_id, o.CustomerID AS customer_id, c.CompanyName AS customer_company,
		       o.EmployeeID AS employee_id, e.FirstName AS employee_first_name, e.LastName AS employee_last_name,
		       e.Country AS employee_country, o.OrderDate AS order_date, o.RequiredDate AS required_date,
		       o.ShippedDate AS shipped_date, o.ShipVia AS shipper_id, s.CompanyName AS shipper_company,
		       o.Freight AS freight, o.ShipName AS ship_name, o.ShipAddress AS ship_address, o.ShipCity AS ship_city,
		       o.ShipRegion AS ship_region, o.ShipPostalCode AS ship_postal_code, o.ShipCountry AS ship_country
		FROM Orders o
		INNER JOIN Customers c ON c.CustomerID = o.CustomerID
		INNER JOIN Employees e ON e.EmployeeID = o.EmployeeID
		INNER JOIN Shippers s ON s.ShipperID = o.ShipVia
		WHERE o.OrderID = :order_id`

	selectOrderDetailsSQL = `
		SELECT od.OrderID AS order_id, od.ProductID AS product_id, p.ProductName AS product_name,
		       p.SupplierID AS supplier_id, s.CompanyName AS supplier, p.CategoryID AS category_id,
		       c.CategoryName AS category, od.UnitPrice AS unit_price, od.Quantity AS quantity, od.Discount AS discount
		FROM OrderDetails od
		INNER JOIN Products p ON p.ProductID = od.ProductID
		INNER JOIN Suppliers s ON s.SupplierID = p.SupplierID
		INNER JOIN Categories c ON c.CategoryID = p.CategoryID
		WHERE od.OrderID = :order_id
		ORDER BY od.ProductID`

	selectOrdersPageSQL = `
		SELECT OrderID AS order_id, CustomerID AS customer_id, EmployeeID AS employee_id
		FROM Orders
		ORDER BY OrderID
		LIMIT :count OFFSET :skip`
)

// Conn is the connection factory the repository draws from.
// *sqlx.DB implements it.
type Conn interface {
	db.DBTxBeginner
	repository.DBExecutor
}

// OrderRepository implements repository.OrderRepository on any SQL store
// with a db.Dialect.
type OrderRepository struct {
	conn    Conn
	dialect db.Dialect
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(conn Conn, dialect db.Dialect) *OrderRepository {
	return &OrderRepository{conn: conn, dialect: dialect}
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

// AddOrder inserts the order header, then replaces its details, in a single
// transaction. It returns the store-generated order id, or -1 on failure.
func (r *OrderRepository) AddOrder(ctx context.Context, order *domain.Order) (int64, error) {
	if order == nil {
		return -1, invalidArgument(opAddOrder, "order must not be nil")
	}

	orderID := int64(-1)
	err := r.inTx(ctx, opAddOrder, func(tx *sqlx.Tx) error {
		query, args, err := bind(tx, insertOrderSQL, orderParams(order))
		if err != nil {
			return err
		}
		id, err := r.dialect.InsertReturningID(ctx, tx, query, "OrderID", args...)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		orderID = id
		return replaceOrderDetails(ctx, tx, id, order.OrderDetails)
	})
	if err != nil {
		return -1, err
	}
	return orderID, nil
}

// GetOrder loads an order with its customer, employee, shipper and details.
// A missing order yields a shell carrying only orderID, not an error.
func (r *OrderRepository) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, _, err := r.FindOrder(ctx, orderID)
	return order, err
}

// FindOrder is GetOrder with an explicit flag telling whether the order row
// exists.
func (r *OrderRepository) FindOrder(ctx context.Context, orderID int64) (*domain.Order, bool, error) {
	if orderID <= 0 {
		return nil, false, invalidArgument(opGetOrder, fmt.Sprintf("orderId must be positive, got %d", orderID))
	}

	order := domain.NewOrder(orderID)
	params := Params{"order_id": orderID}

	found := true
	var header orderRow
	if err := getNamed(ctx, r.conn, &header, selectOrderSQL, params); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, util.NewRepositoryError(opGetOrder, classifyError(err),
				fmt.Errorf("failed to get order %d: %w", orderID, err))
		}
		found = false
	} else {
		header.applyTo(order)
	}

	var details []detailRow
	if err := selectNamed(ctx, r.conn, &details, selectOrderDetailsSQL, params); err != nil {
		return nil, false, util.NewRepositoryError(opGetOrder, classifyError(err),
			fmt.Errorf("failed to get details of order %d: %w", orderID, err))
	}
	for _, d := range details {
		order.OrderDetails = append(order.OrderDetails, d.toDomain())
	}

	return order, found, nil
}

// GetOrders returns at most count shallow orders after skipping skip rows,
// ordered by order id. Only the id, customer code and employee id are set.
func (r *OrderRepository) GetOrders(ctx context.Context, skip, count int) ([]domain.Order, error) {
	if skip < 0 || count <= 0 {
		return nil, fmt.Errorf("%s: skip=%d count=%d: %w", opGetOrders, skip, count, util.ErrOutOfRange)
	}

	var rows []orderListRow
	if err := selectNamed(ctx, r.conn, &rows, selectOrdersPageSQL, Params{"skip": skip, "count": count}); err != nil {
		return nil, util.NewRepositoryError(opGetOrders, classifyError(err),
			fmt.Errorf("failed to list orders: %w", err))
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toDomain())
	}
	return orders, nil
}

// RemoveOrder deletes the details and then the order row in one transaction.
func (r *OrderRepository) RemoveOrder(ctx context.Context, orderID int64) error {
	return r.inTx(ctx, opRemoveOrder, func(tx *sqlx.Tx) error {
		params := Params{"order_id": orderID}
		if err := execNamed(ctx, tx, deleteOrderDetailsSQL, params); err != nil {
			return fmt.Errorf("failed to delete details of order %d: %w", orderID, err)
		}
		if err := execNamed(ctx, tx, deleteOrderSQL, params); err != nil {
			return fmt.Errorf("failed to delete order %d: %w", orderID, err)
		}
		return nil
	})
}

// UpdateOrder overwrites every column of the order row and replaces its
// details with order.OrderDetails, in one transaction.
func (r *OrderRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return invalidArgument(opUpdateOrder, "order must not be nil")
	}

	return r.inTx(ctx, opUpdateOrder, func(tx *sqlx.Tx) error {
		params := orderParams(order)
		params["order_id"] = order.ID
		if err := execNamed(ctx, tx, updateOrderSQL, params); err != nil {
			return fmt.Errorf("failed to update order %d: %w", order.ID, err)
		}
		return replaceOrderDetails(ctx, tx, order.ID, order.OrderDetails)
	})
}

// inTx runs fn in a transaction and turns any failure, after rollback, into
// a RepositoryError for op.
func (r *OrderRepository) inTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	if err := db.WithTx(ctx, r.conn, fn); err != nil {
		return util.NewRepositoryError(op, classifyError(err), err)
	}
	return nil
}

// replaceOrderDetails deletes every detail row of orderID and inserts details.
func replaceOrderDetails(ctx context.Context, tx *sqlx.Tx, orderID int64, details []domain.OrderDetail) error {
	if err := execNamed(ctx, tx, deleteOrderDetailsSQL, Params{"order_id": orderID}); err != nil {
		return fmt.Errorf("failed to delete details of order %d: %w", orderID, err)
	}
	for _, d := range details {
		if err := execNamed(ctx, tx, insertOrderDetailSQL, Params{
			"order_id":   orderID,
			"product_id": d.Product.ID,
			"unit_price": d.UnitPrice,
			"quantity":   d.Quantity,
			"discount":   d.Discount,
		}); err != nil {
			return fmt.Errorf("failed to insert detail for product %d of order %d: %w", d.Product.ID, orderID, err)
		}
	}
	return nil
}

// orderParams binds the header columns shared by insert and update.
func orderParams(order *domain.Order) Params {
	addr := order.ShippingAddress
	return Params{
		"customer_id":      string(order.Customer.Code),
		"employee_id":      order.Employee.ID,
		"order_date":       dateValue(order.OrderDate),
		"required_date":    dateValue(order.RequiredDate),
		"shipped_date":     dateValue(order.ShippedDate),
		"ship_via":         order.Shipper.ID,
		"freight":          order.Freight,
		"ship_name":        order.ShipName,
		"ship_address":     addr.Address,
		"ship_city":        addr.City,
		"ship_region":      regionValue(addr.Region),
		"ship_postal_code": addr.PostalCode,
		"ship_country":     addr.Country,
	}
}

func invalidArgument(op, msg string) error {
	return util.NewRepositoryError(op, util.CodeInvalidArgument, fmt.Errorf("%w: %s", util.ErrInvalidInput, msg))
}
