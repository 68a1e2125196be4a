// internal/handlers/errors.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vervecommerce/verve-backend/internal/services"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

// respondDomainError maps a service outcome onto an HTTP status, carrying
// the offending field through so the console can highlight it. Anything
// that is not a DomainError is an opaque internal failure.
func respondDomainError(c *gin.Context, err error) {
	de, ok := services.AsDomainError(err)
	if !ok {
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
		return
	}

	status := http.StatusBadRequest
	switch de.Code {
	case services.ErrCodeNotFound:
		status = http.StatusNotFound
	case services.ErrCodeDuplicateSlug,
		services.ErrCodeDuplicateSku,
		services.ErrCodeDuplicateBarcode,
		services.ErrCodeDuplicateCode,
		services.ErrCodeReferencedValueInUse,
		services.ErrCodeCannotDelete:
		status = http.StatusConflict
	case services.ErrCodeValidationFailed:
		status = http.StatusUnprocessableEntity
	}

	utils.FieldErrorResponse(c, status, string(de.Code), de.Message, de.Field)
}
