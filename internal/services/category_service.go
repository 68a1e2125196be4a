// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vervecommerce/verve-backend/internal/models"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name      string                `json:"name" validate:"required,min=2,max=100"`
	Slug      string                `json:"slug,omitempty" validate:"omitempty,slug"`
	ParentID  *uuid.UUID            `json:"parent_id,omitempty"`
	IsActive  *bool                 `json:"is_active,omitempty"`
	SortOrder int                   `json:"sort_order"`
	Gender    models.CategoryGender `json:"gender,omitempty"`
	ImageURL  string                `json:"image_url,omitempty"`
}

type UpdateCategoryRequest struct {
	Name      *string                `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Slug      *string                `json:"slug,omitempty" validate:"omitempty,slug"`
	ParentID  *uuid.UUID             `json:"parent_id,omitempty"`
	IsActive  *bool                  `json:"is_active,omitempty"`
	SortOrder *int                   `json:"sort_order,omitempty"`
	Gender    *models.CategoryGender `json:"gender,omitempty"`
	ImageURL  *string                `json:"image_url,omitempty"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// BuildCategoryTree links a flat, sort-ordered set of category rows into a
// rooted forest. Each row is indexed by id in a first pass and appended to
// its parent's children in a second, so the cost is O(n) regardless of
// depth. A row whose parent id does not resolve in the input set is kept as
// a root rather than dropped: a dangling parent reference must never hide a
// category from the administrator. No cycle detection is attempted; cyclic
// rows land under their first-discovered parent instead of looping.
func BuildCategoryTree(categories []models.Category) []*models.Category {
	index := make(map[uuid.UUID]*models.Category, len(categories))
	nodes := make([]*models.Category, len(categories))

	for i := range categories {
		node := categories[i]
		node.Children = []*models.Category{}
		nodes[i] = &node
		index[node.ID] = nodes[i]
	}

	roots := make([]*models.Category, 0, len(nodes))
	for _, node := range nodes {
		if node.ParentID != nil {
			if parent, ok := index[*node.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// GetTree returns the full category forest for the admin console.
func (s *CategoryService) GetTree(includeInactive bool) ([]*models.Category, error) {
	query := s.db.Model(&models.Category{}).Order("sort_order ASC, name ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return BuildCategoryTree(categories), nil
}

func (s *CategoryService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
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

	if req.ParentID != nil {
		if _, err := s.GetCategory(*req.ParentID); err != nil {
			return nil, err
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &models.Category{
		Name:      req.Name,
		Slug:      slug,
		ParentID:  req.ParentID,
		IsActive:  isActive,
		SortOrder: req.SortOrder,
		Gender:    req.Gender,
		ImageURL:  req.ImageURL,
	}

	if err := s.db.Create(category).Error; err != nil {
		if translated := translateUniqueViolation(err, slug, ""); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) UpdateCategory(id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationFailed("", err.Error())
	}

	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		if err := s.checkSlugAvailable(*req.Slug, id); err != nil {
			return nil, err
		}
	}

	if req.ParentID != nil {
		if *req.ParentID == id {
			return nil, NewValidationFailed("parent_id", "category cannot be its own parent")
		}
		if _, err := s.GetCategory(*req.ParentID); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.ParentID != nil {
		updates["parent_id"] = *req.ParentID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			if translated := translateUniqueViolation(err, category.Slug, ""); translated != err {
				return nil, translated
			}
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	return s.GetCategory(id)
}

// DeleteCategory refuses to delete a category that still has child
// categories or attached products. The guard blocks, it never cascades.
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	category, err := s.GetCategory(id)
	if err != nil {
		return err
	}

	var childCount int64
	if err := s.db.Model(&models.Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
		return fmt.Errorf("failed to count child categories: %w", err)
	}
	if childCount > 0 {
		return NewCannotDelete("category has child categories")
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}
	if productCount > 0 {
		return NewCannotDelete("category has attached products")
	}

	if err := s.db.Delete(category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}

func (s *CategoryService) checkSlugAvailable(slug string, excludeID uuid.UUID) error {
	var count int64
	query := s.db.Model(&models.Category{}).Where("slug = ?", slug)
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
