// internal/services/admin_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vervecommerce/verve-backend/internal/models"
)

type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalProducts    int64            `json:"total_products"`
	ProductsByStatus map[string]int64 `json:"products_by_status"`
	TotalCategories  int64            `json:"total_categories"`
	TotalAttributes  int64            `json:"total_attributes"`
	TotalVariants    int64            `json:"total_variants"`
	ActiveCoupons    int64            `json:"active_coupons"`
	TotalSellers     int64            `json:"total_sellers"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats collects the entity counts for the console landing page.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{ProductsByStatus: make(map[string]int64)}

	if err := s.db.Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := s.db.Model(&models.Product{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count products by status: %w", err)
	}
	for _, row := range rows {
		stats.ProductsByStatus[row.Status] = row.Count
	}

	if err := s.db.Model(&models.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if err := s.db.Model(&models.Attribute{}).Count(&stats.TotalAttributes).Error; err != nil {
		return nil, fmt.Errorf("failed to count attributes: %w", err)
	}
	if err := s.db.Model(&models.ProductVariant{}).Count(&stats.TotalVariants).Error; err != nil {
		return nil, fmt.Errorf("failed to count variants: %w", err)
	}
	if err := s.db.Model(&models.Coupon{}).Where("is_active = ?", true).Count(&stats.ActiveCoupons).Error; err != nil {
		return nil, fmt.Errorf("failed to count coupons: %w", err)
	}
	if err := s.db.Model(&models.User{}).Where("role = ?", models.UserRoleSeller).Count(&stats.TotalSellers).Error; err != nil {
		return nil, fmt.Errorf("failed to count sellers: %w", err)
	}

	return stats, nil
}
