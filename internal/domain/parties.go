// internal/domain/parties.go
package domain

// CustomerCode is the short alphanumeric key of a customer, e.g. "ALFKI".
type CustomerCode string

// Customer is the party an order is placed for.
type Customer struct {
	Code        CustomerCode `json:"code"`
	CompanyName string       `json:"company_name,omitempty"`
}

// Employee is the sales representative who took the order.
type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Country   string `json:"country,omitempty"`
}

// Shipper is the carrier an order ships via.
type Shipper struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name,omitempty"`
}

// Product is the item sold on an order line, with its supplier and category
// names resolved from lookup tables.
type Product struct {
	ID          int64  `json:"id"`
	ProductName string `json:"product_name,omitempty"`
	SupplierID  int64  `json:"supplier_id,omitempty"`
	Supplier    string `json:"supplier,omitempty"`
	CategoryID  int64  `json:"category_id,omitempty"`
	Category    string `json:"category,omitempty"`
}
