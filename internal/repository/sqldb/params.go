// internal/repository/sqldb/params.go
package sqldb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"northwind-orders/internal/repository"
)

// Params maps the named placeholders of a statement (":name") to values.
type Params map[string]any

// bind compiles the named placeholders of query into the driver's bind
// style and returns the positional arguments in placeholder order.
func bind(q sqlx.ExtContext, query string, params Params) (string, []any, error) {
	named, args, err := sqlx.Named(query, map[string]any(params))
	if err != nil {
		return "", nil, fmt.Errorf("failed to bind parameters: %w", err)
	}
	return q.Rebind(named), args, nil
}

func execNamed(ctx context.Context, q repository.DBExecutor, query string, params Params) error {
	bound, args, err := bind(q, query, params)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, bound, args...)
	return err
}

func getNamed(ctx context.Context, q repository.DBExecutor, dest any, query string, params Params) error {
	bound, args, err := bind(q, query, params)
	if err != nil {
		return err
	}
	return q.GetContext(ctx, dest, bound, args...)
}

func selectNamed(ctx context.Context, q repository.DBExecutor, dest any, query string, params Params) error {
	bound, args, err := bind(q, query, params)
	if err != nil {
		return err
	}
	return q.SelectContext(ctx, dest, bound, args...)
}
