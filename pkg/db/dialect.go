// pkg/db/dialect.go
package db

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver registered as "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"   // PostgreSQL driver registered as "postgres"
	_ "modernc.org/sqlite" // SQLite driver registered as "sqlite"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite"
)

func init() {
	// sqlx does not know modernc's driver name; it takes '?' placeholders.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Dialect isolates the statements that differ between stores.
type Dialect interface {
	// Name is a human-readable store name used in errors.
	Name() string
	// DriverName is the database/sql driver the dialect opens.
	DriverName() string
	// InsertReturningID executes an INSERT and returns the row id the store
	// generated for idColumn. q must be bound to a single connection (a
	// transaction) for dialects that read the id back with a second query.
	InsertReturningID(ctx context.Context, q sqlx.ExtContext, query, idColumn string, args ...any) (int64, error)

	dataSource(dsn string) string
	configure(conn *sqlx.DB)
}

// DialectFor returns the dialect registered for driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverPostgres, DriverPgx:
		return postgresDialect{driver: driver}, nil
	case DriverSQLite:
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

type postgresDialect struct {
	driver string
}

func (d postgresDialect) Name() string       { return "PostgreSQL" }
func (d postgresDialect) DriverName() string { return d.driver }

func (d postgresDialect) InsertReturningID(ctx context.Context, q sqlx.ExtContext, query, idColumn string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowxContext(ctx, query+" RETURNING "+idColumn, args...).Scan(&id); err != nil {
		return -1, err
	}
	return id, nil
}

func (d postgresDialect) dataSource(dsn string) string { return dsn }

func (d postgresDialect) configure(*sqlx.DB) {}

type sqliteDialect struct{}

func (sqliteDialect) Name() string       { return "SQLite" }
func (sqliteDialect) DriverName() string { return DriverSQLite }

func (sqliteDialect) InsertReturningID(ctx context.Context, q sqlx.ExtContext, query, _ string, args ...any) (int64, error) {
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return -1, err
	}
	var id int64
	if err := q.QueryRowxContext(ctx, "SELECT last_insert_rowid()").Scan(&id); err != nil {
		return -1, err
	}
	return id, nil
}

// sqliteForeignKeys turns on foreign key enforcement, which SQLite leaves
// off per connection unless asked.
const sqliteForeignKeys = "_pragma=foreign_keys(1)"

// dataSource appends the foreign key pragma unless dsn already sets it.
func (sqliteDialect) dataSource(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + sqliteForeignKeys
}

// SQLite allows a single writer, and every connection to ":memory:" is a
// separate database, so the pool is pinned to one connection.
func (sqliteDialect) configure(conn *sqlx.DB) {
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
}
