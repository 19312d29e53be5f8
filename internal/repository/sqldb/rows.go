// internal/repository/sqldb/rows.go
package sqldb

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"northwind-orders/internal/domain"
)

// Layouts accepted for date columns stored as text. Drivers that decode
// timestamps natively hand over time.Time and skip parsing.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// nullDate scans a nullable date column independent of driver and locale.
type nullDate struct {
	Time  time.Time
	Valid bool
}

func (d *nullDate) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		d.Time, d.Valid = v, true
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a date", value)
	}
}

func (d *nullDate) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time, d.Valid = time.Time{}, false
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time, d.Valid = t, true
			return nil
		}
	}
	return fmt.Errorf("unrecognized date %q", s)
}

func (d nullDate) ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

// orderRow is one row of the order header join.
type orderRow struct {
	OrderID           int64               `db:"order_id"`
	CustomerID        string              `db:"customer_id"`
	CustomerCompany   sql.NullString      `db:"customer_company"`
	EmployeeID        int64               `db:"employee_id"`
	EmployeeFirstName sql.NullString      `db:"employee_first_name"`
	EmployeeLastName  sql.NullString      `db:"employee_last_name"`
	EmployeeCountry   sql.NullString      `db:"employee_country"`
	OrderDate         nullDate            `db:"order_date"`
	RequiredDate      nullDate            `db:"required_date"`
	ShippedDate       nullDate            `db:"shipped_date"`
	ShipperID         int64               `db:"shipper_id"`
	ShipperCompany    sql.NullString      `db:"shipper_company"`
	Freight           decimal.NullDecimal `db:"freight"`
	ShipName          sql.NullString      `db:"ship_name"`
	ShipAddress       sql.NullString      `db:"ship_address"`
	ShipCity          sql.NullString      `db:"ship_city"`
	ShipRegion        sql.NullString      `db:"ship_region"`
	ShipPostalCode    sql.NullString      `db:"ship_postal_code"`
	ShipCountry       sql.NullString      `db:"ship_country"`
}

func (r orderRow) applyTo(order *domain.Order) {
	order.Customer = domain.Customer{
		Code:        domain.CustomerCode(strings.TrimSpace(r.CustomerID)),
		CompanyName: r.CustomerCompany.String,
	}
	order.Employee = domain.Employee{
		ID:        r.EmployeeID,
		FirstName: r.EmployeeFirstName.String,
		LastName:  r.EmployeeLastName.String,
		Country:   r.EmployeeCountry.String,
	}
	order.Shipper = domain.Shipper{
		ID:          r.ShipperID,
		CompanyName: r.ShipperCompany.String,
	}
	order.OrderDate = r.OrderDate.ptr()
	order.RequiredDate = r.RequiredDate.ptr()
	order.ShippedDate = r.ShippedDate.ptr()
	order.Freight = r.Freight.Decimal
	order.ShipName = r.ShipName.String
	order.ShippingAddress = domain.ShippingAddress{
		Address:    r.ShipAddress.String,
		City:       r.ShipCity.String,
		Region:     regionFromColumn(r.ShipRegion),
		PostalCode: r.ShipPostalCode.String,
		Country:    r.ShipCountry.String,
	}
}

// detailRow is one row of the order detail join.
type detailRow struct {
	OrderID     int64           `db:"order_id"`
	ProductID   int64           `db:"product_id"`
	ProductName sql.NullString  `db:"product_name"`
	SupplierID  sql.NullInt64   `db:"supplier_id"`
	Supplier    sql.NullString  `db:"supplier"`
	CategoryID  sql.NullInt64   `db:"category_id"`
	Category    sql.NullString  `db:"category"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Quantity    int64           `db:"quantity"`
	Discount    float64         `db:"discount"`
}

func (r detailRow) toDomain() domain.OrderDetail {
	return domain.OrderDetail{
		OrderID: r.OrderID,
		Product: domain.Product{
			ID:          r.ProductID,
			ProductName: r.ProductName.String,
			SupplierID:  r.SupplierID.Int64,
			Supplier:    r.Supplier.String,
			CategoryID:  r.CategoryID.Int64,
			Category:    r.Category.String,
		},
		UnitPrice: r.UnitPrice,
		Quantity:  r.Quantity,
		Discount:  r.Discount,
	}
}

// orderListRow is one row of the shallow order listing.
type orderListRow struct {
	OrderID    int64          `db:"order_id"`
	CustomerID sql.NullString `db:"customer_id"`
	EmployeeID sql.NullInt64  `db:"employee_id"`
}

func (r orderListRow) toDomain() domain.Order {
	order := domain.NewOrder(r.OrderID)
	order.Customer = domain.Customer{Code: domain.CustomerCode(strings.TrimSpace(r.CustomerID.String))}
	order.Employee = domain.Employee{ID: r.EmployeeID.Int64}
	return *order
}

// regionFromColumn treats NULL and empty text alike as "no region".
func regionFromColumn(col sql.NullString) *string {
	if !col.Valid || col.String == "" {
		return nil
	}
	region := col.String
	return &region
}

// regionValue is the bound value for an optional region: NULL when absent.
func regionValue(region *string) any {
	if region == nil || *region == "" {
		return nil
	}
	return *region
}

// dateValue is the bound value for an optional date: NULL when absent.
func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
