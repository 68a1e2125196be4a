// internal/handlers/attribute.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vervecommerce/verve-backend/internal/i18n"
	"github.com/vervecommerce/verve-backend/internal/services"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

type AttributeHandler struct {
	attributeService *services.AttributeService
}

func NewAttributeHandler(attributeService *services.AttributeService) *AttributeHandler {
	return &AttributeHandler{
		attributeService: attributeService,
	}
}

// GET /attributes
func (h *AttributeHandler) ListAttributes(c *gin.Context) {
	attributes, err := h.attributeService.ListAttributes()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, attributes)
}

// GET /attributes/:id
func (h *AttributeHandler) GetAttribute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid attribute id")
		return
	}

	attribute, err := h.attributeService.GetAttribute(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, attribute)
}

// POST /attributes
func (h *AttributeHandler) CreateAttribute(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	attribute, err := h.attributeService.CreateAttribute(&req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyAttributeCreated),
		"attribute": attribute,
	})
}

// PUT /attributes/:id
func (h *AttributeHandler) UpdateAttribute(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid attribute id")
		return
	}

	var req services.UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	attribute, err := h.attributeService.UpdateAttribute(id, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyAttributeUpdated),
		"attribute": attribute,
	})
}

// DELETE /attributes/:id
func (h *AttributeHandler) DeleteAttribute(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid attribute id")
		return
	}

	if err := h.attributeService.DeleteAttribute(id); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAttributeDeleted),
	})
}
