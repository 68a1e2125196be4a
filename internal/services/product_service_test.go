// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/vervecommerce/verve-backend/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *ProductService
	category *models.Category
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewProductService(suite.db)
	suite.category = createTestCategory(suite.T(), suite.db, "Clothing", "clothing")
}

func (suite *ProductServiceTestSuite) createBasicProduct(name, sku string, variants ...ProductVariantInput) *models.Product {
	product, err := suite.service.CreateProduct(&CreateProductRequest{
		Name:       name,
		SKU:        sku,
		CategoryID: suite.category.ID,
		BasePrice:  19.90,
		Variants:   variants,
	})
	suite.Require().NoError(err)
	return product
}

func (suite *ProductServiceTestSuite) variantSKUs(productID uuid.UUID) []string {
	var variants []models.ProductVariant
	suite.Require().NoError(
		suite.db.Where("product_id = ?", productID).Find(&variants).Error)

	skus := make([]string, 0, len(variants))
	for _, v := range variants {
		skus = append(skus, v.SKU)
	}
	return skus
}

func (suite *ProductServiceTestSuite) TestCreateProductFullGraph() {
	attrService := NewAttributeService(suite.db)
	color, err := attrService.CreateAttribute(&CreateAttributeRequest{
		Name:   "Color",
		Values: []string{"Red"},
	})
	suite.Require().NoError(err)
	red := color.Values[0]

	product, err := suite.service.CreateProduct(&CreateProductRequest{
		Name:       "Basic Tee",
		SKU:        "TS",
		CategoryID: suite.category.ID,
		BasePrice:  19.90,
		Images: []ProductImageInput{
			{ImageURL: "products/ts-front.jpg", IsPrimary: true},
			{ImageURL: "products/ts-back.jpg", SortOrder: 1},
		},
		Variants: []ProductVariantInput{
			{
				SKU:   "TS-RED",
				Price: 19.90,
				Attributes: []VariantAttributeRef{
					{AttributeID: color.ID, AttributeValueID: red.ID},
				},
			},
		},
	})

	suite.Require().NoError(err)
	suite.Equal("basic-tee", product.Slug)
	suite.Equal(models.ProductStatusDraft, product.Status)
	suite.Len(product.Images, 2)
	suite.Require().Len(product.Variants, 1)
	suite.Equal("TS-RED", product.Variants[0].SKU)
	suite.True(product.Variants[0].IsActive)

	var bindings int64
	suite.Require().NoError(suite.db.Model(&models.VariantAttributeValue{}).
		Where("variant_id = ?", product.Variants[0].ID).Count(&bindings).Error)
	suite.EqualValues(1, bindings)
}

func (suite *ProductServiceTestSuite) TestCreateProductDuplicateSlug() {
	suite.createBasicProduct("Basic Tee", "TS-1")

	_, err := suite.service.CreateProduct(&CreateProductRequest{
		Name:       "Basic Tee",
		SKU:        "TS-2",
		CategoryID: suite.category.ID,
		BasePrice:  19.90,
	})
	suite.True(IsCode(err, ErrCodeDuplicateSlug))
}

func (suite *ProductServiceTestSuite) TestCreateProductDuplicateSku() {
	suite.createBasicProduct("Basic Tee", "TS")

	_, err := suite.service.CreateProduct(&CreateProductRequest{
		Name:       "Other Tee",
		SKU:        "TS",
		CategoryID: suite.category.ID,
		BasePrice:  19.90,
	})
	suite.True(IsCode(err, ErrCodeDuplicateSku))
}

func (suite *ProductServiceTestSuite) TestCreateProductMissingCategory() {
	_, err := suite.service.CreateProduct(&CreateProductRequest{
		Name:       "Basic Tee",
		SKU:        "TS",
		CategoryID: uuid.New(),
		BasePrice:  19.90,
	})
	suite.True(IsCode(err, ErrCodeNotFound))
}

func (suite *ProductServiceTestSuite) TestCreateProductDuplicateVariantSkuRollsBack() {
	_, err := suite.service.CreateProduct(&CreateProductRequest{
		Name:       "Basic Tee",
		SKU:        "TS",
		CategoryID: suite.category.ID,
		BasePrice:  19.90,
		Variants: []ProductVariantInput{
			{SKU: "TS-RED-M", Price: 19.90},
			{SKU: "TS-RED-M", Price: 21.90},
		},
	})

	suite.True(IsCode(err, ErrCodeDuplicateSku))

	// Nothing of the graph may survive the failed transaction.
	var products int64
	suite.Require().NoError(suite.db.Model(&models.Product{}).Count(&products).Error)
	suite.Zero(products)
	var variants int64
	suite.Require().NoError(suite.db.Model(&models.ProductVariant{}).Count(&variants).Error)
	suite.Zero(variants)
}

func (suite *ProductServiceTestSuite) TestUpdateProductReplacesImages() {
	product, err := suite.service.CreateProduct(&CreateProductRequest{
		Name:       "Basic Tee",
		SKU:        "TS",
		CategoryID: suite.category.ID,
		BasePrice:  19.90,
		Images: []ProductImageInput{
			{ImageURL: "products/old-1.jpg", IsPrimary: true},
			{ImageURL: "products/old-2.jpg"},
		},
	})
	suite.Require().NoError(err)

	images := []ProductImageInput{{ImageURL: "products/new.jpg", IsPrimary: true}}
	updated, err := suite.service.UpdateProduct(product.ID, &UpdateProductRequest{Images: &images})

	suite.Require().NoError(err)
	suite.Require().Len(updated.Images, 1)
	suite.Equal("products/new.jpg", updated.Images[0].ImageURL)
}

func (suite *ProductServiceTestSuite) TestUpdateProductNilCollectionsUntouched() {
	product := suite.createBasicProduct("Basic Tee", "TS",
		ProductVariantInput{SKU: "TS-S", Price: 19.90})

	name := "Premium Tee"
	updated, err := suite.service.UpdateProduct(product.ID, &UpdateProductRequest{Name: &name})

	suite.Require().NoError(err)
	suite.Equal("Premium Tee", updated.Name)
	suite.ElementsMatch([]string{"TS-S"}, suite.variantSKUs(product.ID))
}

func (suite *ProductServiceTestSuite) TestUpdateProductVariantDiff() {
	product := suite.createBasicProduct("Basic Tee", "TS",
		ProductVariantInput{SKU: "TS-S", Price: 19.90, StockQuantity: 5},
		ProductVariantInput{SKU: "TS-M", Price: 19.90, StockQuantity: 3},
	)

	var survivor models.ProductVariant
	suite.Require().NoError(suite.db.First(&survivor, "sku = ?", "TS-M").Error)

	binding := &models.VariantAttributeValue{
		VariantID:        survivor.ID,
		AttributeID:      uuid.New(),
		AttributeValueID: uuid.New(),
	}
	suite.Require().NoError(suite.db.Create(binding).Error)

	// Drop TS-S, reprice TS-M, introduce TS-L.
	variants := []ProductVariantInput{
		{SKU: "TS-M", Price: 24.90, StockQuantity: 7},
		{SKU: "TS-L", Price: 19.90, StockQuantity: 2},
	}
	_, err := suite.service.UpdateProduct(product.ID, &UpdateProductRequest{Variants: &variants})
	suite.Require().NoError(err)

	suite.ElementsMatch([]string{"TS-M", "TS-L"}, suite.variantSKUs(product.ID))

	// The surviving SKU keeps its storage identity and bindings.
	var updated models.ProductVariant
	suite.Require().NoError(suite.db.First(&updated, "sku = ?", "TS-M").Error)
	suite.Equal(survivor.ID, updated.ID)
	suite.Equal(24.90, updated.Price)
	suite.Equal(7, updated.StockQuantity)

	var bindings int64
	suite.Require().NoError(suite.db.Model(&models.VariantAttributeValue{}).
		Where("variant_id = ?", survivor.ID).Count(&bindings).Error)
	suite.EqualValues(1, bindings)

	// The dropped SKU takes its bindings with it.
	var orphaned int64
	suite.Require().NoError(suite.db.Model(&models.VariantAttributeValue{}).
		Joins("JOIN product_variants ON product_variants.id = variant_attribute_values.variant_id").
		Where("product_variants.sku = ?", "TS-S").Count(&orphaned).Error)
	suite.Zero(orphaned)
}

func (suite *ProductServiceTestSuite) TestUpdateProductNotFound() {
	name := "Ghost"
	_, err := suite.service.UpdateProduct(uuid.New(), &UpdateProductRequest{Name: &name})
	suite.True(IsCode(err, ErrCodeNotFound))
}

func (suite *ProductServiceTestSuite) TestListProductsFilters() {
	suite.createBasicProduct("Basic Tee", "TS-1")
	other := createTestCategory(suite.T(), suite.db, "Shoes", "shoes")
	_, err := suite.service.CreateProduct(&CreateProductRequest{
		Name:       "Runner",
		SKU:        "RUN-1",
		CategoryID: other.ID,
		BasePrice:  79.90,
	})
	suite.Require().NoError(err)

	params := ProductListParams{CategoryID: &other.ID}
	params.Page = 1
	params.Limit = 20

	products, total, err := suite.service.ListProducts(params)
	suite.Require().NoError(err)
	suite.EqualValues(1, total)
	suite.Require().Len(products, 1)
	suite.Equal("Runner", products[0].Name)
}

func (suite *ProductServiceTestSuite) TestDeleteProductCascades() {
	product := suite.createBasicProduct("Basic Tee", "TS",
		ProductVariantInput{SKU: "TS-S", Price: 19.90})

	suite.Require().NoError(suite.service.DeleteProduct(product.ID))

	_, err := suite.service.GetProduct(product.ID)
	suite.True(IsCode(err, ErrCodeNotFound))
	suite.Empty(suite.variantSKUs(product.ID))
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
