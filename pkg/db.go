package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeInsufficientPrivilege = "42501"
	pgCodeInvalidParameterValue = "22023"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsInsufficientPrivilegeError checks if the error is a permission (or row level security) error
func IsInsufficientPrivilegeError(err error) bool {
	return pgErrorCode(err) == pgCodeInsufficientPrivilege
}

// IsInvalidParameterValueError checks if the error is raised for a bad function argument
func IsInvalidParameterValueError(err error) bool {
	return pgErrorCode(err) == pgCodeInvalidParameterValue
}
