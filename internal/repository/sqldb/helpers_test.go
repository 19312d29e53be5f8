// internal/repository/sqldb/helpers_test.go
package sqldb

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"northwind-orders/internal/domain"
	"northwind-orders/pkg/db"
)

// newSQLiteRepository opens a private in-memory database seeded with the
// Northwind lookup rows the tests reference.
func newSQLiteRepository(t *testing.T) (*OrderRepository, *sqlx.DB) {
	t.Helper()
	return newSQLiteRepositoryAt(t, ":memory:")
}

// newSQLiteRepositoryAt is newSQLiteRepository on the database named by dsn.
func newSQLiteRepositoryAt(t *testing.T, dsn string) (*OrderRepository, *sqlx.DB) {
	t.Helper()

	conn, dialect, err := db.Open(context.Background(), db.Config{Driver: db.DriverSQLite, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	applySchema(t, conn, "testdata/schema.sqlite.sql")

	return NewOrderRepository(conn, dialect), conn
}

func applySchema(t *testing.T, conn *sqlx.DB, path string) {
	t.Helper()

	script, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, stmt := range strings.Split(string(script), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := conn.Exec(stmt)
		require.NoError(t, err, "schema statement failed: %s", stmt)
	}
}

func countRows(t *testing.T, conn *sqlx.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, conn.Get(&n, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)))
	return n
}

func dateOf(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string {
	return &s
}

func detail(productID int64, unitPrice string, quantity int64, discount float64) domain.OrderDetail {
	return domain.OrderDetail{
		Product:   domain.Product{ID: productID},
		UnitPrice: decimal.RequireFromString(unitPrice),
		Quantity:  quantity,
		Discount:  discount,
	}
}

// sampleOrder mirrors Northwind order 10248 placed by ALFKI.
func sampleOrder(details ...domain.OrderDetail) *domain.Order {
	if details == nil {
		details = []domain.OrderDetail{detail(7, "10", 5, 0)}
	}
	return &domain.Order{
		Customer:     domain.Customer{Code: "ALFKI"},
		Employee:     domain.Employee{ID: 5},
		Shipper:      domain.Shipper{ID: 3},
		OrderDate:    dateOf(1996, time.July, 4),
		RequiredDate: dateOf(1996, time.August, 1),
		Freight:      decimal.RequireFromString("32.38"),
		ShipName:     "Alfreds Futterkiste",
		ShippingAddress: domain.ShippingAddress{
			Address:    "Obere Str. 57",
			City:       "Berlin",
			Region:     strPtr("BE"),
			PostalCode: "12209",
			Country:    "Germany",
		},
		OrderDetails: details,
	}
}

func assertSameDate(t *testing.T, want, got *time.Time, field string) {
	t.Helper()

	if want == nil {
		assert.Nil(t, got, field)
		return
	}
	if assert.NotNil(t, got, field) {
		assert.True(t, want.Equal(*got), "%s: want %s, got %s", field, want, got)
	}
}

// assertSameHeader compares the columns the caller writes, ignoring the
// display names resolved from lookup tables.
func assertSameHeader(t *testing.T, want, got *domain.Order) {
	t.Helper()

	assert.Equal(t, want.Customer.Code, got.Customer.Code)
	assert.Equal(t, want.Employee.ID, got.Employee.ID)
	assert.Equal(t, want.Shipper.ID, got.Shipper.ID)
	assertSameDate(t, want.OrderDate, got.OrderDate, "OrderDate")
	assertSameDate(t, want.RequiredDate, got.RequiredDate, "RequiredDate")
	assertSameDate(t, want.ShippedDate, got.ShippedDate, "ShippedDate")
	assert.True(t, want.Freight.Equal(got.Freight), "freight: want %s, got %s", want.Freight, got.Freight)
	assert.Equal(t, want.ShipName, got.ShipName)
	assert.Equal(t, want.ShippingAddress, got.ShippingAddress)
}

func assertSameDetails(t *testing.T, want, got []domain.OrderDetail) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Product.ID, got[i].Product.ID)
		assert.True(t, want[i].UnitPrice.Equal(got[i].UnitPrice), "unit price of line %d: want %s, got %s", i, want[i].UnitPrice, got[i].UnitPrice)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.InDelta(t, want[i].Discount, got[i].Discount, 1e-6)
	}
}
