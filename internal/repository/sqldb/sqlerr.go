// internal/repository/sqldb/sqlerr.go
package sqldb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"northwind-orders/internal/util"
)

// PostgreSQL SQLSTATE codes of integrity constraint violations.
const (
	sqlStateNotNullViolation    = "23502"
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
)

// classifyError maps a driver error from any supported store to an ErrorCode.
func classifyError(err error) util.ErrorCode {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return codeFromSQLState(pgErr.Code)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return codeFromSQLState(string(pqErr.Code))
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return codeFromSQLite(liteErr.Code())
	}
	if errors.Is(err, util.ErrInvalidInput) {
		return util.CodeInvalidArgument
	}
	return util.CodeOther
}

func codeFromSQLState(state string) util.ErrorCode {
	switch state {
	case sqlStateUniqueViolation:
		return util.CodeUniqueViolation
	case sqlStateForeignKeyViolation:
		return util.CodeForeignKeyViolation
	case sqlStateNotNullViolation:
		return util.CodeNotNullViolation
	case sqlStateCheckViolation:
		return util.CodeCheckViolation
	default:
		return util.CodeOther
	}
}

func codeFromSQLite(code int) util.ErrorCode {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return util.CodeUniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return util.CodeForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return util.CodeNotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return util.CodeCheckViolation
	default:
		return util.CodeOther
	}
}
