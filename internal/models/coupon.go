// internal/models/coupon.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type Coupon struct {
	BaseModel
	Code              string     `json:"code" gorm:"uniqueIndex;size:50;not null"`
	Type              CouponType `json:"type" gorm:"type:varchar(20);not null"`
	Value             float64    `json:"value" gorm:"type:decimal(10,2);not null"`
	MinOrderAmount    *float64   `json:"min_order_amount,omitempty" gorm:"type:decimal(10,2)"`
	MaxDiscountAmount *float64   `json:"max_discount_amount,omitempty" gorm:"type:decimal(10,2)"`
	UsageLimit        *int       `json:"usage_limit,omitempty"`
	UsageCount        int        `json:"usage_count" gorm:"default:0"`
	StartsAt          time.Time  `json:"starts_at" gorm:"not null"`
	ExpiresAt         time.Time  `json:"expires_at" gorm:"not null"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`

	// Optional restriction sets. Empty means the coupon applies storewide.
	CategoryIDs pq.StringArray `json:"category_ids,omitempty" gorm:"type:text[]"`
	ProductIDs  pq.StringArray `json:"product_ids,omitempty" gorm:"type:text[]"`
}

// WindowContains reports whether t falls inside [StartsAt, ExpiresAt).
func (c *Coupon) WindowContains(t time.Time) bool {
	return !t.Before(c.StartsAt) && t.Before(c.ExpiresAt)
}
