// internal/handlers/coupon.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vervecommerce/verve-backend/internal/i18n"
	"github.com/vervecommerce/verve-backend/internal/services"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

type CouponHandler struct {
	couponService *services.CouponService
}

func NewCouponHandler(couponService *services.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// GET /coupons
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	coupons, total, err := h.couponService.ListCoupons(params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	result := utils.CreatePaginationResult(coupons, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /coupons/:id
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid coupon id")
		return
	}

	coupon, err := h.couponService.GetCoupon(id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, coupon)
}

// POST /coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	coupon, err := h.couponService.CreateCoupon(&req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponCreated),
		"coupon":  coupon,
	})
}

// PUT /coupons/:id
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid coupon id")
		return
	}

	var req services.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	coupon, err := h.couponService.UpdateCoupon(id, &req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponUpdated),
		"coupon":  coupon,
	})
}

// DELETE /coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid coupon id")
		return
	}

	if err := h.couponService.DeleteCoupon(id); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponDeleted),
	})
}

// POST /coupons/:id/redeem
func (h *CouponHandler) RedeemCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", "invalid coupon id")
		return
	}

	if err := h.couponService.RedeemCoupon(id); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponRedeemed),
	})
}

// POST /coupons/validate
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	quote, err := h.couponService.ValidateCoupon(&req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, quote)
}
