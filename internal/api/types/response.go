// internal/api/types/response.go
package types

// PaginatedResponse defines a generic structure for paginated API responses.
// T represents the type of data contained in the 'Data' slice.
type PaginatedResponse[T any] struct {
	Data  []T `json:"data"`
	Skip  int `json:"skip"`
	Count int `json:"count"` // Requested page size; len(Data) may be smaller
}

// CreatedResponse is the body returned when a resource is created.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
