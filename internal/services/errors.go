// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorCode identifies a domain failure kind. Every core operation either
// fully commits or surfaces one of these; there is no partial-success state.
type ErrorCode string

const (
	ErrCodeNotFound             ErrorCode = "NOT_FOUND"
	ErrCodeDuplicateSlug        ErrorCode = "DUPLICATE_SLUG"
	ErrCodeDuplicateSku         ErrorCode = "DUPLICATE_SKU"
	ErrCodeDuplicateBarcode     ErrorCode = "DUPLICATE_BARCODE"
	ErrCodeDuplicateCode        ErrorCode = "DUPLICATE_CODE"
	ErrCodeReferencedValueInUse ErrorCode = "REFERENCED_VALUE_IN_USE"
	ErrCodeCannotDelete         ErrorCode = "CANNOT_DELETE"
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
)

// DomainError is the typed outcome handed to handlers instead of raw
// storage errors. Field names the offending field path when there is one.
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFound(resource string) *DomainError {
	return &DomainError{Code: ErrCodeNotFound, Message: resource + " not found"}
}

func NewDuplicateSlug(slug string) *DomainError {
	return &DomainError{Code: ErrCodeDuplicateSlug, Field: "slug", Message: fmt.Sprintf("slug %q is already taken", slug)}
}

func NewDuplicateSku(sku string) *DomainError {
	return &DomainError{Code: ErrCodeDuplicateSku, Field: "sku", Message: fmt.Sprintf("sku %q is already taken", sku)}
}

func NewDuplicateBarcode(barcode string) *DomainError {
	return &DomainError{Code: ErrCodeDuplicateBarcode, Field: "barcode", Message: fmt.Sprintf("barcode %q is already taken", barcode)}
}

func NewDuplicateCode(code string) *DomainError {
	return &DomainError{Code: ErrCodeDuplicateCode, Field: "code", Message: fmt.Sprintf("coupon code %q is already taken", code)}
}

func NewReferencedValueInUse(value string) *DomainError {
	return &DomainError{
		Code:    ErrCodeReferencedValueInUse,
		Field:   "values",
		Message: fmt.Sprintf("attribute value %q is still referenced by product variants", value),
	}
}

func NewCannotDelete(message string) *DomainError {
	return &DomainError{Code: ErrCodeCannotDelete, Message: message}
}

func NewValidationFailed(field, message string) *DomainError {
	return &DomainError{Code: ErrCodeValidationFailed, Field: field, Message: message}
}

// AsDomainError unwraps err to a DomainError, if it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	de, ok := AsDomainError(err)
	return ok && de.Code == code
}

// translateUniqueViolation inspects a storage-level uniqueness violation and
// re-raises it as the domain error for the violated column, so callers can
// highlight the offending field. Postgres reports SQLSTATE 23505 with the
// constraint name; the sqlite test store only gives the message text, so the
// message is checked as a fallback. Anything unrecognized is returned as-is
// for the caller to wrap as an opaque internal failure.
func translateUniqueViolation(err error, skuHint, barcodeHint string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return err
		}
		return classifyConstraint(pgErr.ConstraintName+" "+pgErr.Detail, skuHint, barcodeHint)
	}

	msg := err.Error()
	if !strings.Contains(strings.ToLower(msg), "unique") {
		return err
	}
	return classifyConstraint(msg, skuHint, barcodeHint)
}

// isUniqueViolation reports whether err is a storage-level uniqueness
// violation, regardless of which constraint fired.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

func classifyConstraint(detail, skuHint, barcodeHint string) error {
	lower := strings.ToLower(detail)
	switch {
	case strings.Contains(lower, "barcode"):
		return NewDuplicateBarcode(barcodeHint)
	case strings.Contains(lower, "sku"):
		return NewDuplicateSku(skuHint)
	case strings.Contains(lower, "slug"):
		return NewDuplicateSlug(skuHint)
	default:
		return NewDuplicateSku(skuHint)
	}
}
