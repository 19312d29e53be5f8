// internal/repository/sqldb/sqlerr_test.go
package sqldb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	sqlite3 "modernc.org/sqlite/lib"

	"northwind-orders/internal/util"
)

func TestClassifyError(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want util.ErrorCode
	}{
		{name: "PgxUnique", err: &pgconn.PgError{Code: "23505"}, want: util.CodeUniqueViolation},
		{name: "PgxCheckWrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23514"}), want: util.CodeCheckViolation},
		{name: "PgxSyntax", err: &pgconn.PgError{Code: "42601"}, want: util.CodeOther},
		{name: "PqForeignKey", err: &pq.Error{Code: "23503"}, want: util.CodeForeignKeyViolation},
		{name: "PqNotNull", err: &pq.Error{Code: "23502"}, want: util.CodeNotNullViolation},
		{name: "InvalidInput", err: fmt.Errorf("%w: bad id", util.ErrInvalidInput), want: util.CodeInvalidArgument},
		{name: "Other", err: errors.New("connection reset"), want: util.CodeOther},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyError(tc.err))
		})
	}
}

func TestCodeFromSQLite(t *testing.T) {
	assert.Equal(t, util.CodeUniqueViolation, codeFromSQLite(sqlite3.SQLITE_CONSTRAINT_UNIQUE))
	assert.Equal(t, util.CodeUniqueViolation, codeFromSQLite(sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY))
	assert.Equal(t, util.CodeForeignKeyViolation, codeFromSQLite(sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY))
	assert.Equal(t, util.CodeNotNullViolation, codeFromSQLite(sqlite3.SQLITE_CONSTRAINT_NOTNULL))
	assert.Equal(t, util.CodeCheckViolation, codeFromSQLite(sqlite3.SQLITE_CONSTRAINT_CHECK))
	assert.Equal(t, util.CodeOther, codeFromSQLite(sqlite3.SQLITE_BUSY))
}
