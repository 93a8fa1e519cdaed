// internal/utils/dberrors.go
package utils

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres class 22 error for string_data_right_truncation.
const pgCodeValueTooLong = "22001"

// TooLongColumn reports whether err is a "value too long" database error and,
// when the driver exposes it, which column overflowed. Postgres does not
// always attach the column name, so the second return may be empty even when
// the first is true.
func TooLongColumn(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != pgCodeValueTooLong {
		return "", false
	}
	return pgErr.ColumnName, true
}
