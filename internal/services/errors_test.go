// internal/services/errors_test.go
package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapWriteErrorDecodesTruncatedColumn(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22001", ColumnName: "especies_objetivo"}
	err := mapWriteError(fmt.Errorf("record save failed: %w", pgErr), pescaFieldByColumn)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "especies_objetivo", fieldErr.Field)
	assert.NotEmpty(t, fieldErr.Message)
}

func TestMapWriteErrorPassesThroughOtherFailures(t *testing.T) {
	plain := errors.New("connection refused")
	assert.Equal(t, plain, mapWriteError(plain, pescaFieldByColumn))

	unique := &pgconn.PgError{Code: "23505", ColumnName: "curp"}
	var fieldErr *FieldError
	assert.False(t, errors.As(mapWriteError(unique, pescaFieldByColumn), &fieldErr))

	assert.NoError(t, mapWriteError(nil, pescaFieldByColumn))
}
