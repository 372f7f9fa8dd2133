package db

import (
	"errors"

	"github.com/lib/pq"
)

const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
	PgNumericOutOfRange   = "22003"
)

func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == PgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == PgForeignKeyViolation
}

// IsNumericOutOfRange reports a value that does not fit its column type.
func IsNumericOutOfRange(err error) bool {
	return pgCode(err) == PgNumericOutOfRange
}
