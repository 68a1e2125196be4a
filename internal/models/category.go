// internal/models/category.go
package models

import (
	"github.com/google/uuid"
)

type Category struct {
	BaseModel
	Name      string         `json:"name" gorm:"size:100;not null"`
	Slug      string         `json:"slug" gorm:"uniqueIndex;size:120;not null"`
	ParentID  *uuid.UUID     `json:"parent_id" gorm:"type:uuid;index"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	SortOrder int            `json:"sort_order" gorm:"default:0;index"`
	Gender    CategoryGender `json:"gender,omitempty" gorm:"type:varchar(10)"`
	ImageURL  string         `json:"image_url,omitempty" gorm:"size:500"`

	// Relationships
	Parent   *Category `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:CategoryID"`

	// Children is populated by the tree builder, never by the ORM.
	Children []*Category `json:"children" gorm:"-"`
}
