// internal/services/coupon_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/vervecommerce/verve-backend/internal/models"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

type CouponService struct {
	db *gorm.DB
}

type CreateCouponRequest struct {
	Code              string            `json:"code" validate:"required,min=3,max=50"`
	Type              models.CouponType `json:"type" validate:"required,oneof=percentage fixed_amount"`
	Value             float64           `json:"value" validate:"required,gt=0"`
	MinOrderAmount    *float64          `json:"min_order_amount,omitempty" validate:"omitempty,gt=0"`
	MaxDiscountAmount *float64          `json:"max_discount_amount,omitempty" validate:"omitempty,gt=0"`
	UsageLimit        *int              `json:"usage_limit,omitempty" validate:"omitempty,gt=0"`
	StartsAt          time.Time         `json:"starts_at" validate:"required"`
	ExpiresAt         time.Time         `json:"expires_at" validate:"required"`
	IsActive          *bool             `json:"is_active,omitempty"`
	CategoryIDs       []string          `json:"category_ids,omitempty"`
	ProductIDs        []string          `json:"product_ids,omitempty"`
}

type UpdateCouponRequest struct {
	Value             *float64   `json:"value,omitempty" validate:"omitempty,gt=0"`
	MinOrderAmount    *float64   `json:"min_order_amount,omitempty"`
	MaxDiscountAmount *float64   `json:"max_discount_amount,omitempty"`
	UsageLimit        *int       `json:"usage_limit,omitempty"`
	StartsAt          *time.Time `json:"starts_at,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	IsActive          *bool      `json:"is_active,omitempty"`
	CategoryIDs       *[]string  `json:"category_ids,omitempty"`
	ProductIDs        *[]string  `json:"product_ids,omitempty"`
}

type ValidateCouponRequest struct {
	Code        string   `json:"code" validate:"required"`
	OrderAmount float64  `json:"order_amount" validate:"required,gt=0"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	ProductIDs  []string `json:"product_ids,omitempty"`
}

type CouponQuote struct {
	Coupon         *models.Coupon `json:"coupon"`
	DiscountAmount float64        `json:"discount_amount"`
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

func (s *CouponService) ListCoupons(params utils.PaginationParams) ([]models.Coupon, int64, error) {
	query := s.db.Model(&models.Coupon{})
	if params.Search != "" {
		query = query.Where("LOWER(code) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count coupons: %w", err)
	}

	allowedSortFields := []string{"created_at", "code", "expires_at", "usage_count"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var coupons []models.Coupon
	if err := query.Find(&coupons).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch coupons: %w", err)
	}
	return coupons, total, nil
}

func (s *CouponService) GetCoupon(id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("coupon")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &coupon, nil
}

func (s *CouponService) CreateCoupon(req *CreateCouponRequest) (*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationFailed("", err.Error())
	}
	if !req.StartsAt.Before(req.ExpiresAt) {
		return nil, NewValidationFailed("starts_at", "starts_at must be before expires_at")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	var count int64
	if err := s.db.Model(&models.Coupon{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check coupon code: %w", err)
	}
	if count > 0 {
		return nil, NewDuplicateCode(code)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon := &models.Coupon{
		Code:              code,
		Type:              req.Type,
		Value:             req.Value,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		StartsAt:          req.StartsAt,
		ExpiresAt:         req.ExpiresAt,
		IsActive:          isActive,
		CategoryIDs:       pq.StringArray(req.CategoryIDs),
		ProductIDs:        pq.StringArray(req.ProductIDs),
	}

	if err := s.db.Create(coupon).Error; err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return coupon, nil
}

func (s *CouponService) UpdateCoupon(id uuid.UUID, req *UpdateCouponRequest) (*models.Coupon, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationFailed("", err.Error())
	}

	coupon, err := s.GetCoupon(id)
	if err != nil {
		return nil, err
	}

	startsAt := coupon.StartsAt
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}
	expiresAt := coupon.ExpiresAt
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}
	if !startsAt.Before(expiresAt) {
		return nil, NewValidationFailed("starts_at", "starts_at must be before expires_at")
	}

	updates := make(map[string]interface{})
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.MinOrderAmount != nil {
		updates["min_order_amount"] = *req.MinOrderAmount
	}
	if req.MaxDiscountAmount != nil {
		updates["max_discount_amount"] = *req.MaxDiscountAmount
	}
	if req.UsageLimit != nil {
		updates["usage_limit"] = *req.UsageLimit
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = *req.ExpiresAt
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.CategoryIDs != nil {
		updates["category_ids"] = pq.StringArray(*req.CategoryIDs)
	}
	if req.ProductIDs != nil {
		updates["product_ids"] = pq.StringArray(*req.ProductIDs)
	}

	if len(updates) > 0 {
		if err := s.db.Model(coupon).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update coupon: %w", err)
		}
	}

	return s.GetCoupon(id)
}

// DeleteCoupon refuses while the coupon has usage history.
func (s *CouponService) DeleteCoupon(id uuid.UUID) error {
	coupon, err := s.GetCoupon(id)
	if err != nil {
		return err
	}
	if coupon.UsageCount > 0 {
		return NewCannotDelete("coupon has usage history")
	}
	if err := s.db.Delete(coupon).Error; err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	return nil
}

// ValidateCoupon checks a code against an order snapshot and quotes the
// discount without redeeming it.
func (s *CouponService) ValidateCoupon(req *ValidateCouponRequest) (*CouponQuote, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationFailed("", err.Error())
	}

	var coupon models.Coupon
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if err := s.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("coupon")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	if !coupon.IsActive || !coupon.WindowContains(now) {
		return nil, NewValidationFailed("code", "coupon is not currently valid")
	}
	if coupon.UsageLimit != nil && coupon.UsageCount >= *coupon.UsageLimit {
		return nil, NewValidationFailed("code", "coupon usage limit reached")
	}
	if coupon.MinOrderAmount != nil && req.OrderAmount < *coupon.MinOrderAmount {
		return nil, NewValidationFailed("order_amount",
			fmt.Sprintf("order must be at least %.2f to use this coupon", *coupon.MinOrderAmount))
	}
	if !couponCoversOrder(&coupon, req.CategoryIDs, req.ProductIDs) {
		return nil, NewValidationFailed("code", "coupon does not apply to these items")
	}

	return &CouponQuote{Coupon: &coupon, DiscountAmount: computeDiscount(&coupon, req.OrderAmount)}, nil
}

// RedeemCoupon bumps the usage counter after an order commits. The
// increment runs as a single expression so concurrent redemptions cannot
// lose counts.
func (s *CouponService) RedeemCoupon(id uuid.UUID) error {
	result := s.db.Model(&models.Coupon{}).Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to redeem coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewNotFound("coupon")
	}
	return nil
}

func couponCoversOrder(coupon *models.Coupon, categoryIDs, productIDs []string) bool {
	if len(coupon.CategoryIDs) == 0 && len(coupon.ProductIDs) == 0 {
		return true
	}
	for _, id := range categoryIDs {
		if containsString(coupon.CategoryIDs, id) {
			return true
		}
	}
	for _, id := range productIDs {
		if containsString(coupon.ProductIDs, id) {
			return true
		}
	}
	return false
}

func computeDiscount(coupon *models.Coupon, orderAmount float64) float64 {
	var discount float64
	switch coupon.Type {
	case models.CouponTypePercentage:
		discount = orderAmount * coupon.Value / 100
	case models.CouponTypeFixedAmount:
		discount = coupon.Value
	}
	if coupon.MaxDiscountAmount != nil && discount > *coupon.MaxDiscountAmount {
		discount = *coupon.MaxDiscountAmount
	}
	if discount > orderAmount {
		discount = orderAmount
	}
	return discount
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
