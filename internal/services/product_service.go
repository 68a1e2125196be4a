// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vervecommerce/verve-backend/internal/models"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type ProductImageInput struct {
	ImageURL         string     `json:"image_url" validate:"required"`
	IsPrimary        bool       `json:"is_primary"`
	SortOrder        int        `json:"sort_order"`
	AttributeValueID *uuid.UUID `json:"attribute_value_id,omitempty"`
}

type ProductVariantInput struct {
	SKU            string                `json:"sku" validate:"required,max=150"`
	Price          float64               `json:"price" validate:"min=0"`
	CompareAtPrice *float64              `json:"compare_at_price,omitempty"`
	StockQuantity  int                   `json:"stock_quantity" validate:"min=0"`
	Barcode        *string               `json:"barcode,omitempty"`
	IsActive       *bool                 `json:"is_active,omitempty"`
	Attributes     []VariantAttributeRef `json:"attributes" validate:"dive"`
}

type CreateProductRequest struct {
	Name           string                `json:"name" validate:"required,min=2,max=255"`
	Slug           string                `json:"slug,omitempty" validate:"omitempty,slug"`
	SKU            string                `json:"sku" validate:"required,max=100"`
	Description    string                `json:"description,omitempty"`
	CategoryID     uuid.UUID             `json:"category_id" validate:"required"`
	BasePrice      float64               `json:"base_price" validate:"required,min=0.01"`
	CompareAtPrice *float64              `json:"compare_at_price,omitempty"`
	Status         models.ProductStatus  `json:"status,omitempty"`
	SellerID       *uuid.UUID            `json:"seller_id,omitempty"`
	Images         []ProductImageInput   `json:"images,omitempty" validate:"dive"`
	Variants       []ProductVariantInput `json:"variants,omitempty" validate:"dive"`
}

type UpdateProductRequest struct {
	Name           *string               `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Slug           *string               `json:"slug,omitempty" validate:"omitempty,slug"`
	Description    *string               `json:"description,omitempty"`
	CategoryID     *uuid.UUID            `json:"category_id,omitempty"`
	BasePrice      *float64              `json:"base_price,omitempty" validate:"omitempty,min=0.01"`
	CompareAtPrice *float64              `json:"compare_at_price,omitempty"`
	Status         *models.ProductStatus `json:"status,omitempty"`
	// Nil leaves the owned collection untouched; non-nil is the complete
	// desired state and drives a replace (images) or reconcile (variants).
	Images   *[]ProductImageInput   `json:"images,omitempty"`
	Variants *[]ProductVariantInput `json:"variants,omitempty"`
}

type ProductListParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID            `json:"category_id,omitempty"`
	Status     *models.ProductStatus `json:"status,omitempty"`
	SellerID   *uuid.UUID            `json:"seller_id,omitempty"`
	PriceMin   *float64              `json:"price_min,omitempty"`
	PriceMax   *float64              `json:"price_max,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// CreateProduct persists a product plus its images, variants, and variant
// attribute bindings as one atomic unit. Slug and product-level SKU are
// pre-checked before any row is written; duplicate variant SKUs and
// barcodes, including duplicates within the payload itself, surface from
// the storage constraint and are translated to domain errors. Any failure
// aborts the whole transaction: a product is never left half-created.
func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
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
	if err := s.checkSkuAvailable(req.SKU, uuid.Nil); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("category")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.ProductStatusDraft
	}

	product := &models.Product{
		Name:           req.Name,
		Slug:           slug,
		SKU:            strings.TrimSpace(req.SKU),
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		BasePrice:      req.BasePrice,
		CompareAtPrice: req.CompareAtPrice,
		Status:         status,
		SellerID:       req.SellerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			if translated := translateUniqueViolation(err, product.SKU, ""); translated != err {
				return translated
			}
			return fmt.Errorf("failed to create product: %w", err)
		}

		if err := insertImages(tx, product.ID, req.Images); err != nil {
			return err
		}

		for i := range req.Variants {
			if err := insertVariant(tx, product.ID, &req.Variants[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(product.ID)
}

// UpdateProduct reconciles the submitted desired state against the
// persisted product inside one transaction. Images have no identity worth
// preserving and are replaced wholesale. Variants are diffed by SKU, the
// natural key: persisted SKUs missing from the desired list are deleted,
// surviving SKUs have their mutable fields updated in place with their
// attribute bindings left untouched, and new SKUs are inserted with
// bindings. The three legs run in a single transaction so the variant set
// can never end up inconsistent with the images or the product row.
func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationFailed("", err.Error())
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != product.Slug {
		if err := s.checkSlugAvailable(*req.Slug, id); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewNotFound("category")
			}
			return nil, fmt.Errorf("database error: %w", err)
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
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.CategoryID != nil {
			updates["category_id"] = *req.CategoryID
		}
		if req.BasePrice != nil {
			updates["base_price"] = *req.BasePrice
		}
		if req.CompareAtPrice != nil {
			updates["compare_at_price"] = *req.CompareAtPrice
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				if translated := translateUniqueViolation(err, product.SKU, ""); translated != err {
					return translated
				}
				return fmt.Errorf("failed to update product: %w", err)
			}
		}

		if req.Images != nil {
			if err := tx.Delete(&models.ProductImage{}, "product_id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to clear product images: %w", err)
			}
			if err := insertImages(tx, id, *req.Images); err != nil {
				return err
			}
		}

		if req.Variants != nil {
			if err := reconcileVariants(tx, product, *req.Variants); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetProduct(id)
}

// reconcileVariants executes the three-way diff between persisted and
// desired variants keyed by SKU: persisted \ desired is deleted, the
// intersection is updated in place (storage id and bindings preserved),
// desired \ persisted is inserted.
func reconcileVariants(tx *gorm.DB, product *models.Product, desired []ProductVariantInput) error {
	persisted := make(map[string]*models.ProductVariant, len(product.Variants))
	for i := range product.Variants {
		persisted[product.Variants[i].SKU] = &product.Variants[i]
	}

	desiredSKUs := make(map[string]struct{}, len(desired))
	for i := range desired {
		desiredSKUs[desired[i].SKU] = struct{}{}
	}

	for sku, variant := range persisted {
		if _, keep := desiredSKUs[sku]; keep {
			continue
		}
		if err := tx.Delete(&models.VariantAttributeValue{}, "variant_id = ?", variant.ID).Error; err != nil {
			return fmt.Errorf("failed to delete variant bindings: %w", err)
		}
		if err := tx.Delete(&models.ProductVariant{}, "id = ?", variant.ID).Error; err != nil {
			return fmt.Errorf("failed to delete variant: %w", err)
		}
	}

	for i := range desired {
		input := &desired[i]
		existing, ok := persisted[input.SKU]
		if !ok {
			if err := insertVariant(tx, product.ID, input); err != nil {
				return err
			}
			continue
		}

		// Bindings are fixed once a SKU is established; only the mutable
		// fields move.
		updates := map[string]interface{}{
			"price":            input.Price,
			"compare_at_price": input.CompareAtPrice,
			"stock_quantity":   input.StockQuantity,
			"barcode":          input.Barcode,
			"is_active":        variantActive(input),
		}
		if err := tx.Model(&models.ProductVariant{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			barcode := ""
			if input.Barcode != nil {
				barcode = *input.Barcode
			}
			if translated := translateUniqueViolation(err, input.SKU, barcode); translated != err {
				return translated
			}
			return fmt.Errorf("failed to update variant: %w", err)
		}
	}

	return nil
}

func insertVariant(tx *gorm.DB, productID uuid.UUID, input *ProductVariantInput) error {
	variant := &models.ProductVariant{
		ProductID:      productID,
		SKU:            strings.TrimSpace(input.SKU),
		Price:          input.Price,
		CompareAtPrice: input.CompareAtPrice,
		StockQuantity:  input.StockQuantity,
		Barcode:        input.Barcode,
		IsActive:       variantActive(input),
	}
	if err := tx.Create(variant).Error; err != nil {
		barcode := ""
		if input.Barcode != nil {
			barcode = *input.Barcode
		}
		if translated := translateUniqueViolation(err, variant.SKU, barcode); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create variant: %w", err)
	}

	for _, ref := range input.Attributes {
		binding := &models.VariantAttributeValue{
			VariantID:        variant.ID,
			AttributeID:      ref.AttributeID,
			AttributeValueID: ref.AttributeValueID,
		}
		if err := tx.Create(binding).Error; err != nil {
			return fmt.Errorf("failed to create variant binding: %w", err)
		}
	}
	return nil
}

func insertImages(tx *gorm.DB, productID uuid.UUID, images []ProductImageInput) error {
	for _, input := range images {
		image := &models.ProductImage{
			ProductID:        productID,
			ImageURL:         input.ImageURL,
			IsPrimary:        input.IsPrimary,
			SortOrder:        input.SortOrder,
			AttributeValueID: input.AttributeValueID,
		}
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("failed to create product image: %w", err)
		}
	}
	return nil
}

func variantActive(input *ProductVariantInput) bool {
	if input.IsActive == nil {
		return true
	}
	return *input.IsActive
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Variants").
		Preload("Variants.AttributeValues").
		Preload("Variants.AttributeValues.Attribute").
		Preload("Variants.AttributeValues.AttributeValue").
		Preload("Category").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFound("product")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return s.GetProduct(product.ID)
}

func (s *ProductService) ListProducts(params ProductListParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Preload("Category").Preload("Images")

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}
	if params.PriceMin != nil {
		query = query.Where("base_price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("base_price <= ?", *params.PriceMax)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "base_price", "status"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// DeleteProduct removes the product and everything it exclusively owns.
func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range product.Variants {
			if err := tx.Delete(&models.VariantAttributeValue{}, "variant_id = ?", product.Variants[i].ID).Error; err != nil {
				return fmt.Errorf("failed to delete variant bindings: %w", err)
			}
		}
		if err := tx.Delete(&models.ProductVariant{}, "product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete variants: %w", err)
		}
		if err := tx.Delete(&models.ProductImage{}, "product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete images: %w", err)
		}
		if err := tx.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

func (s *ProductService) checkSlugAvailable(slug string, excludeID uuid.UUID) error {
	var count int64
	query := s.db.Model(&models.Product{}).Where("slug = ?", slug)
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

func (s *ProductService) checkSkuAvailable(sku string, excludeID uuid.UUID) error {
	var count int64
	query := s.db.Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check sku: %w", err)
	}
	if count > 0 {
		return NewDuplicateSku(sku)
	}
	return nil
}
