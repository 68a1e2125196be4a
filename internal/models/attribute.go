// internal/models/attribute.go
package models

import (
	"github.com/google/uuid"
)

type Attribute struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:120;not null"`

	// Relationships
	Values []AttributeValue `json:"values,omitempty" gorm:"foreignKey:AttributeID"`
}

type AttributeValue struct {
	BaseModel
	AttributeID uuid.UUID `json:"attribute_id" gorm:"type:uuid;not null;index"`
	Value       string    `json:"value" gorm:"size:100;not null"`

	// Relationships
	Attribute Attribute `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
}
