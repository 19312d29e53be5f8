// internal/util/errors.go
package util

import (
	"errors"
	"fmt"
)

// Common application-specific errors.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input provided")
	// ErrOutOfRange is an ErrInvalidInput raised for paging bounds.
	ErrOutOfRange = fmt.Errorf("%w: argument out of range", ErrInvalidInput)
)

// ErrorCode classifies the database failure behind a RepositoryError.
type ErrorCode string

const (
	CodeOther               ErrorCode = "other"
	CodeInvalidArgument     ErrorCode = "invalid_argument"
	CodeUniqueViolation     ErrorCode = "unique_violation"
	CodeForeignKeyViolation ErrorCode = "foreign_key_violation"
	CodeNotNullViolation    ErrorCode = "not_null_violation"
	CodeCheckViolation      ErrorCode = "check_violation"
)

// RepositoryError is returned by the order repository when a statement or
// transaction fails. Message holds the original error text.
type RepositoryError struct {
	Op      string
	Message string
	Code    ErrorCode
	err     error
}

// NewRepositoryError wraps err for the named repository operation.
func NewRepositoryError(op string, code ErrorCode, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Message: err.Error(),
		Code:    code,
		err:     err,
	}
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RepositoryError) Unwrap() error {
	return e.err
}

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}

// IsConstraintViolation reports whether err is a RepositoryError caused by
// an integrity constraint of the store.
func IsConstraintViolation(err error) bool {
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) {
		return false
	}
	switch repoErr.Code {
	case CodeUniqueViolation, CodeForeignKeyViolation, CodeNotNullViolation, CodeCheckViolation:
		return true
	}
	return false
}
