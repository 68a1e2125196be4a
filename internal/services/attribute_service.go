// internal/services/attribute_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vervecommerce/verve-backend/internal/models"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

type AttributeService struct {
	db *gorm.DB
}

type CreateAttributeRequest struct {
	Name   string   `json:"name" validate:"required,min=2,max=100"`
	Slug   string   `json:"slug,omitempty" validate:"omitempty,slug"`
	Values []string `json:"values,omitempty" validate:"omitempty,dive,required"`
}

// UpdateAttributeRequest carries the complete desired vocabulary, not a
// delta. A nil Values leaves the persisted value set untouched.
type UpdateAttributeRequest struct {
	Name   *string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Slug   *string   `json:"slug,omitempty" validate:"omitempty,slug"`
	Values *[]string `json:"values,omitempty"`
}

func NewAttributeService(db *gorm.DB) *AttributeService {
	return &AttributeService{db: db}
}

func (s *AttributeService) ListAttributes() ([]models.Attribute, error) {
	var attributes []models.Attribute
	if err := s.db.Preload("Values").Order("name ASC").Find(&attributes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attributes: %w", err)
	}
	return attributes, nil
}

func (s *AttributeService) GetAttribute(id uuid.UUID) (*models.Attribute, error) {
	var attribute models.Attribute
	if err := s.db.Preload("Values").First(&attribute, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("attribute")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &attribute, nil
}

func (s *AttributeService) CreateAttribute(req *CreateAttributeRequest) (*models.Attribute, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationFailed("", err.Error())
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	if err := s.checkSlugAvailable(slug, uuid.Nil); err != nil {
		return nil, err
	}

	attribute := &models.Attribute{Name: req.Name, Slug: slug}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attribute).Error; err != nil {
			return fmt.Errorf("failed to create attribute: %w", err)
		}
		for _, value := range dedupeStrings(req.Values) {
			av := &models.AttributeValue{AttributeID: attribute.ID, Value: value}
			if err := tx.Create(av).Error; err != nil {
				return fmt.Errorf("failed to create attribute value: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetAttribute(attribute.ID)
}

// UpdateAttribute renames the attribute and/or reconciles its vocabulary.
// The desired value list is treated as a set-difference instruction against
// the persisted set: missing values are inserted, surplus values removed.
// Removal of a value still bound to a variant fails the whole operation with
// ReferencedValueInUse, rolling back any inserted values with it.
func (s *AttributeService) UpdateAttribute(id uuid.UUID, req *UpdateAttributeRequest) (*models.Attribute, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationFailed("", err.Error())
	}

	attribute, err := s.GetAttribute(id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != attribute.Slug {
		if err := s.checkSlugAvailable(*req.Slug, id); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Slug != nil {
			updates["slug"] = *req.Slug
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Attribute{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				if translated := translateUniqueViolation(err, attribute.Slug, ""); translated != err {
					return translated
				}
				return fmt.Errorf("failed to update attribute: %w", err)
			}
		}

		if req.Values == nil {
			return nil
		}
		return s.reconcileValues(tx, attribute, dedupeStrings(*req.Values))
	})
	if err != nil {
		return nil, err
	}

	return s.GetAttribute(id)
}

func (s *AttributeService) reconcileValues(tx *gorm.DB, attribute *models.Attribute, desired []string) error {
	persisted := make(map[string]*models.AttributeValue, len(attribute.Values))
	for i := range attribute.Values {
		persisted[attribute.Values[i].Value] = &attribute.Values[i]
	}

	desiredSet := make(map[string]struct{}, len(desired))
	var toAdd []string
	for _, value := range desired {
		desiredSet[value] = struct{}{}
		if _, ok := persisted[value]; !ok {
			toAdd = append(toAdd, value)
		}
	}

	var toRemove []*models.AttributeValue
	for value, av := range persisted {
		if _, ok := desiredSet[value]; !ok {
			toRemove = append(toRemove, av)
		}
	}

	for _, value := range toAdd {
		av := &models.AttributeValue{AttributeID: attribute.ID, Value: value}
		if err := tx.Create(av).Error; err != nil {
			return fmt.Errorf("failed to add attribute value: %w", err)
		}
	}

	for _, av := range toRemove {
		var bindings int64
		if err := tx.Model(&models.VariantAttributeValue{}).
			Where("attribute_value_id = ?", av.ID).
			Count(&bindings).Error; err != nil {
			return fmt.Errorf("failed to check value references: %w", err)
		}
		if bindings > 0 {
			// Abort the whole reconciliation; the additions above roll
			// back with it.
			return NewReferencedValueInUse(av.Value)
		}
		if err := tx.Delete(&models.AttributeValue{}, "id = ?", av.ID).Error; err != nil {
			return fmt.Errorf("failed to remove attribute value: %w", err)
		}
	}

	return nil
}

// DeleteAttribute removes an attribute and its vocabulary, refusing while
// any of its values is still bound to a variant.
func (s *AttributeService) DeleteAttribute(id uuid.UUID) error {
	attribute, err := s.GetAttribute(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var bindings int64
		if err := tx.Model(&models.VariantAttributeValue{}).
			Where("attribute_id = ?", id).
			Count(&bindings).Error; err != nil {
			return fmt.Errorf("failed to check attribute references: %w", err)
		}
		if bindings > 0 {
			return NewCannotDelete("attribute is still used by product variants")
		}

		if err := tx.Delete(&models.AttributeValue{}, "attribute_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete attribute values: %w", err)
		}
		if err := tx.Delete(attribute).Error; err != nil {
			return fmt.Errorf("failed to delete attribute: %w", err)
		}
		return nil
	})
}

func (s *AttributeService) checkSlugAvailable(slug string, excludeID uuid.UUID) error {
	var count int64
	query := s.db.Model(&models.Attribute{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return NewDuplicateSlug(slug)
	}
	return nil
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
