// internal/services/errors_test.go
package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestAsDomainErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("saving product: %w", NewDuplicateSku("TS-RED-M"))

	de, ok := AsDomainError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrCodeDuplicateSku, de.Code)
	assert.Equal(t, "sku", de.Field)

	assert.True(t, IsCode(wrapped, ErrCodeDuplicateSku))
	assert.False(t, IsCode(wrapped, ErrCodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeDuplicateSku))
}

func TestTranslateUniqueViolationPostgres(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_product_variants_sku"}

	translated := translateUniqueViolation(pgErr, "TS-RED-M", "")
	assert.True(t, IsCode(translated, ErrCodeDuplicateSku))

	pgErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_product_variants_barcode"}
	translated = translateUniqueViolation(pgErr, "TS-RED-M", "4006381333931")
	assert.True(t, IsCode(translated, ErrCodeDuplicateBarcode))
}

func TestTranslateUniqueViolationSqliteMessage(t *testing.T) {
	err := errors.New("UNIQUE constraint failed: product_variants.sku")

	translated := translateUniqueViolation(err, "TS-RED-M", "")
	assert.True(t, IsCode(translated, ErrCodeDuplicateSku))
}

func TestTranslateUniqueViolationPassesThroughUnrelated(t *testing.T) {
	foreign := errors.New("connection reset by peer")
	assert.Equal(t, foreign, translateUniqueViolation(foreign, "TS", ""))

	otherPg := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(otherPg), translateUniqueViolation(otherPg, "TS", ""))

	assert.NoError(t, translateUniqueViolation(nil, "TS", ""))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.False(t, isUniqueViolation(nil))
}
