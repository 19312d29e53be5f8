// internal/api/api_integration_test.go
package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "northwind-orders/internal"
	"northwind-orders/internal/domain"
	"northwind-orders/pkg/db"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

func TestMain(m *testing.M) {
	// Unless pointed elsewhere, run against a private in-memory SQLite store.
	if os.Getenv("NORTHWIND_DB__DRIVER") == "" {
		os.Setenv("NORTHWIND_DB__DRIVER", db.DriverSQLite)
		os.Setenv("NORTHWIND_DB__DSN", ":memory:")
	}

	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}
	if err := prepareDatabase(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to prepare test database: %v\n", err)
		os.Exit(1)
	}

	testServer = httptest.NewServer(testApp.HTTPHandler)
	code := m.Run()
	testServer.Close()

	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

// prepareDatabase creates the Northwind tables and lookup rows.
func prepareDatabase() error {
	schema := "../repository/sqldb/testdata/schema.postgres.sql"
	if testApp.Config.DB.Driver == db.DriverSQLite {
		schema = "../repository/sqldb/testdata/schema.sqlite.sql"
	}

	script, err := os.ReadFile(schema)
	if err != nil {
		return err
	}
	for _, stmt := range strings.Split(string(script), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := testApp.DB.Exec(stmt); err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return nil
}

// makeRequest helper function: sends an HTTP request to the test server.
func makeRequest(t *testing.T, method, path string, body io.Reader) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, testServer.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(respBody)
}

func createOrder(t *testing.T, body string) int64 {
	t.Helper()

	resp, respBody := makeRequest(t, http.MethodPost, "/orders", strings.NewReader(body))
	require.Equal(t, http.StatusCreated, resp.StatusCode, respBody)

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(respBody), &created))
	require.Greater(t, created.ID, int64(0))
	return created.ID
}

func getOrder(t *testing.T, orderID int64) (int, *domain.Order) {
	t.Helper()

	resp, body := makeRequest(t, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	var order domain.Order
	require.NoError(t, json.Unmarshal([]byte(body), &order))
	return resp.StatusCode, &order
}

const alfkiOrder = `{
	"customer_code": "ALFKI",
	"employee_id": 1,
	"shipper_id": 1,
	"order_date": "1996-07-04T00:00:00Z",
	"required_date": "1996-08-01T00:00:00Z",
	"freight": "32.38",
	"ship_name": "Alfreds Futterkiste",
	"shipping_address": {"address": "Obere Str. 57", "city": "Berlin", "postal_code": "12209", "country": "Germany"},
	"details": [{"product_id": 7, "unit_price": "10", "quantity": 5, "discount": 0}]
}`

func TestOrderLifecycleIntegration(t *testing.T) {
	orderID := createOrder(t, alfkiOrder)

	t.Run("GetCreatedOrder", func(t *testing.T) {
		status, order := getOrder(t, orderID)
		require.Equal(t, http.StatusOK, status)

		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, "Alfreds Futterkiste", order.Customer.CompanyName)
		assert.Equal(t, "Davolio", order.Employee.LastName)
		assert.Equal(t, "Speedy Express", order.Shipper.CompanyName)
		assert.True(t, decimal.RequireFromString("32.38").Equal(order.Freight))
		assert.Nil(t, order.ShippingAddress.Region)
		require.Len(t, order.OrderDetails, 1)
		assert.Equal(t, "Uncle Bob's Organic Dried Pears", order.OrderDetails[0].Product.ProductName)
		assert.Equal(t, int64(5), order.OrderDetails[0].Quantity)
	})

	t.Run("ListContainsOrder", func(t *testing.T) {
		resp, body := makeRequest(t, http.MethodGet, "/orders?skip=0&count=100", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page struct {
			Data []domain.Order `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &page))
		var ids []int64
		for _, o := range page.Data {
			ids = append(ids, o.ID)
		}
		assert.Contains(t, ids, orderID)
	})

	t.Run("UpdateReplacesDetails", func(t *testing.T) {
		body := strings.Replace(alfkiOrder, `"quantity": 5`, `"quantity": 20`, 1)
		body = strings.Replace(body, `"city": "Berlin"`, `"city": "Berlin", "region": "BE"`, 1)

		resp, _ := makeRequest(t, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), strings.NewReader(body))
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		_, order := getOrder(t, orderID)
		require.NotNil(t, order)
		require.NotNil(t, order.ShippingAddress.Region)
		assert.Equal(t, "BE", *order.ShippingAddress.Region)
		require.Len(t, order.OrderDetails, 1)
		assert.Equal(t, int64(20), order.OrderDetails[0].Quantity)
	})

	t.Run("DeleteThenNotFound", func(t *testing.T) {
		resp, _ := makeRequest(t, http.MethodDelete, fmt.Sprintf("/orders/%d", orderID), nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		status, _ := getOrder(t, orderID)
		assert.Equal(t, http.StatusNotFound, status)

		resp, _ = makeRequest(t, http.MethodDelete, fmt.Sprintf("/orders/%d", orderID), nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestValidationAndRangeIntegration(t *testing.T) {
	resp, body := makeRequest(t, http.MethodPost, "/orders",
		strings.NewReader(strings.Replace(alfkiOrder, `"discount": 0`, `"discount": 2`, 1)))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "invalid input provided")

	resp, _ = makeRequest(t, http.MethodGet, "/orders?count=0", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetricsIntegration(t *testing.T) {
	resp, _ := makeRequest(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	createOrder(t, alfkiOrder)
	resp, body := makeRequest(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `northwind_repository_operations_total{operation="add_order",result="ok"}`)
	assert.Contains(t, body, "go_goroutines")
}
