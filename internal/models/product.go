// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name           string        `json:"name" gorm:"size:255;not null"`
	Slug           string        `json:"slug" gorm:"uniqueIndex;size:280;not null"`
	SKU            string        `json:"sku" gorm:"uniqueIndex;size:100;not null"`
	Description    string        `json:"description" gorm:"type:text"`
	CategoryID     uuid.UUID     `json:"category_id" gorm:"type:uuid;not null;index"`
	BasePrice      float64       `json:"base_price" gorm:"type:decimal(10,2);not null"`
	CompareAtPrice *float64      `json:"compare_at_price,omitempty" gorm:"type:decimal(10,2)"`
	Status         ProductStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	SellerID       *uuid.UUID    `json:"seller_id,omitempty" gorm:"type:uuid;index"`

	// Relationships. Images and variants are exclusively owned by the
	// product and are replaced/reconciled through the catalog write
	// transaction, never edited row by row.
	Category Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Seller   *User            `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Images   []ProductImage   `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants []ProductVariant `json:"variants" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

type ProductImage struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	ImageURL  string    `json:"image_url" gorm:"size:500;not null"`
	IsPrimary bool      `json:"is_primary" gorm:"default:false"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	// Binds an image to one variant axis value (e.g. the "Red" photos).
	AttributeValueID *uuid.UUID `json:"attribute_value_id,omitempty" gorm:"type:uuid"`
}

type ProductVariant struct {
	BaseModel
	ProductID      uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	SKU            string    `json:"sku" gorm:"uniqueIndex;size:150;not null"`
	Price          float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CompareAtPrice *float64  `json:"compare_at_price,omitempty" gorm:"type:decimal(10,2)"`
	StockQuantity  int       `json:"stock_quantity" gorm:"default:0"`
	Barcode        *string   `json:"barcode,omitempty" gorm:"uniqueIndex;size:100"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`

	// Relationships
	AttributeValues []VariantAttributeValue `json:"attribute_values" gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE"`
}

// VariantAttributeValue pins one axis of a variant to a vocabulary value.
// The set of rows for a variant is its identity for reconciliation; the
// storage id is not.
type VariantAttributeValue struct {
	BaseModel
	VariantID        uuid.UUID `json:"variant_id" gorm:"type:uuid;not null;index"`
	AttributeID      uuid.UUID `json:"attribute_id" gorm:"type:uuid;not null;index"`
	AttributeValueID uuid.UUID `json:"attribute_value_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Attribute      Attribute      `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
	AttributeValue AttributeValue `json:"attribute_value,omitempty" gorm:"foreignKey:AttributeValueID"`
}
