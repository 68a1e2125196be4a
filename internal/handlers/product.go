// internal/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vervecommerce/verve-backend/internal/config"
	"github.com/vervecommerce/verve-backend/internal/i18n"
	"github.com/vervecommerce/verve-backend/internal/models"
	"github.com/vervecommerce/verve-backend/internal/services"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
	cfg            *config.Config
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
		cfg:            cfg,
	}
}

// GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := services.ProductListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if raw := c.Query("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			params.CategoryID = &id
		}
	}
	if raw := c.Query("status"); raw != "" {
		status := models.ProductStatus(raw)
		params.Status = &status
	}
	if raw := c.Query("seller_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			params.SellerID = &id
		}
	}
	if raw := c.Query("price_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			params.PriceMin = &v
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			params.PriceMax = &v
		}
	}

	products, total, err := h.productService.ListProducts(params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.expandProductImages(products)

	result := utils.CreatePaginationResult(products, total, params.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid product id")
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.expandProductImages([]models.Product{*product})
	utils.SuccessResponse(c, product)
}

// GET /products/slug/:slug
func (h *ProductHandler) GetProductBySlug(c *gin.Context) {
	product, err := h.productService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	h.expandProductImages([]models.Product{*product})
	utils.SuccessResponse(c, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	// Sellers always own the products they create.
	if role, _ := utils.GetUserRoleFromContext(c); role == string(models.UserRoleSeller) {
		if userIDStr, ok := utils.GetUserIDFromContext(c); ok {
			if userID, err := uuid.Parse(userIDStr); err == nil {
				req.SellerID = &userID
			}
		}
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// canManageProduct scopes sellers to their own products. Admins manage
// everything; a missing product falls through so the service reports it.
func (h *ProductHandler) canManageProduct(c *gin.Context, id uuid.UUID) bool {
	role, _ := utils.GetUserRoleFromContext(c)
	if role != string(models.UserRoleSeller) {
		return true
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		return true
	}

	userID, _ := utils.GetUserIDFromContext(c)
	return product.SellerID != nil && product.SellerID.String() == userID
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid product id")
		return
	}

	if !h.canManageProduct(c, id) {
		utils.ForbiddenResponse(c, "")
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid product id")
		return
	}

	if !h.canManageProduct(c, id) {
		utils.ForbiddenResponse(c, "")
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

type variantMatrixRequest struct {
	BaseSku    string                     `json:"base_sku" validate:"required,max=100"`
	BasePrice  float64                    `json:"base_price" validate:"min=0"`
	Attributes []services.MatrixAttribute `json:"attributes" validate:"dive"`
	Current    []services.ProposedVariant `json:"current,omitempty"`
}

// POST /products/variant-matrix
//
// Pure preview: computes the proposed variant set for the selected
// attribute values without touching the database. The console calls this
// while the seller is still editing the form.
func (h *ProductHandler) PreviewVariantMatrix(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req variantMatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	variants, err := services.GenerateVariantMatrix(req.BaseSku, req.BasePrice, req.Attributes, req.Current)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"variants": variants,
		"count":    len(variants),
	})
}

// POST /products/upload-image
func (h *ProductHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "image"), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, header, services.ProductImageUploadOptions(h.cfg.Upload.MaxImageSize))
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "UPLOAD_FAILED", i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyFileUploadSuccess),
		"reference": result.Reference,
		"image_url": utils.ExpandImageURL(h.cfg.Assets.BaseURL, result.Reference),
		"size":      result.Size,
		"mime_type": result.MimeType,
	})
}

// expandProductImages rewrites stored image references into absolute URLs
// in place before the products are serialized.
func (h *ProductHandler) expandProductImages(products []models.Product) {
	for i := range products {
		for j := range products[i].Images {
			products[i].Images[j].ImageURL = utils.ExpandImageURL(h.cfg.Assets.BaseURL, products[i].Images[j].ImageURL)
		}
	}
}
