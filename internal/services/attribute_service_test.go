// internal/services/attribute_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/vervecommerce/verve-backend/internal/models"
)

type AttributeServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AttributeService
}

func (suite *AttributeServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewAttributeService(suite.db)
}

func (suite *AttributeServiceTestSuite) values(attribute *models.Attribute) []string {
	fresh, err := suite.service.GetAttribute(attribute.ID)
	suite.Require().NoError(err)

	out := make([]string, 0, len(fresh.Values))
	for _, v := range fresh.Values {
		out = append(out, v.Value)
	}
	return out
}

func (suite *AttributeServiceTestSuite) TestCreateAttributeWithValues() {
	created, err := suite.service.CreateAttribute(&CreateAttributeRequest{
		Name:   "Color",
		Values: []string{"Red", "Blue", "Red"},
	})

	suite.Require().NoError(err)
	suite.Equal("color", created.Slug)
	suite.ElementsMatch([]string{"Red", "Blue"}, suite.values(created))
}

func (suite *AttributeServiceTestSuite) TestCreateAttributeDuplicateSlug() {
	_, err := suite.service.CreateAttribute(&CreateAttributeRequest{Name: "Color"})
	suite.Require().NoError(err)

	_, err = suite.service.CreateAttribute(&CreateAttributeRequest{Name: "Color"})
	suite.True(IsCode(err, ErrCodeDuplicateSlug))
}

func (suite *AttributeServiceTestSuite) TestUpdateAttributeReconcilesValues() {
	created, err := suite.service.CreateAttribute(&CreateAttributeRequest{
		Name:   "Size",
		Values: []string{"S", "M"},
	})
	suite.Require().NoError(err)

	desired := []string{"M", "L", "XL"}
	updated, err := suite.service.UpdateAttribute(created.ID, &UpdateAttributeRequest{Values: &desired})

	suite.Require().NoError(err)
	suite.ElementsMatch([]string{"M", "L", "XL"}, suite.values(updated))
}

func (suite *AttributeServiceTestSuite) TestUpdateAttributeNilValuesLeavesVocabulary() {
	created, err := suite.service.CreateAttribute(&CreateAttributeRequest{
		Name:   "Size",
		Values: []string{"S", "M"},
	})
	suite.Require().NoError(err)

	name := "Garment Size"
	updated, err := suite.service.UpdateAttribute(created.ID, &UpdateAttributeRequest{Name: &name})

	suite.Require().NoError(err)
	suite.Equal("Garment Size", updated.Name)
	suite.ElementsMatch([]string{"S", "M"}, suite.values(updated))
}

// bindValueToVariant wires a minimal product graph so one vocabulary value
// is referenced by a live variant.
func (suite *AttributeServiceTestSuite) bindValueToVariant(attribute *models.Attribute, value string) {
	category := createTestCategory(suite.T(), suite.db, "Clothing", "clothing")

	product := &models.Product{
		Name:       "Tee",
		Slug:       "tee",
		SKU:        "TEE",
		CategoryID: category.ID,
		BasePrice:  19.90,
		Status:     models.ProductStatusActive,
	}
	suite.Require().NoError(suite.db.Create(product).Error)

	variant := &models.ProductVariant{
		ProductID: product.ID,
		SKU:       "TEE-BOUND",
		Price:     19.90,
		IsActive:  true,
	}
	suite.Require().NoError(suite.db.Create(variant).Error)

	var av models.AttributeValue
	suite.Require().NoError(
		suite.db.First(&av, "attribute_id = ? AND value = ?", attribute.ID, value).Error)

	binding := &models.VariantAttributeValue{
		VariantID:        variant.ID,
		AttributeID:      attribute.ID,
		AttributeValueID: av.ID,
	}
	suite.Require().NoError(suite.db.Create(binding).Error)
}

func (suite *AttributeServiceTestSuite) TestUpdateAttributeBlockedByReferencedValue() {
	created, err := suite.service.CreateAttribute(&CreateAttributeRequest{
		Name:   "Color",
		Values: []string{"Red", "Blue"},
	})
	suite.Require().NoError(err)

	suite.bindValueToVariant(created, "Red")

	// Drops "Red" (bound) and adds "Green"; the whole reconciliation must
	// roll back, including the "Green" insert.
	desired := []string{"Blue", "Green"}
	_, err = suite.service.UpdateAttribute(created.ID, &UpdateAttributeRequest{Values: &desired})

	suite.True(IsCode(err, ErrCodeReferencedValueInUse))
	suite.ElementsMatch([]string{"Red", "Blue"}, suite.values(created))
}

func (suite *AttributeServiceTestSuite) TestDeleteAttributeBlockedByBindings() {
	created, err := suite.service.CreateAttribute(&CreateAttributeRequest{
		Name:   "Color",
		Values: []string{"Red"},
	})
	suite.Require().NoError(err)

	suite.bindValueToVariant(created, "Red")

	err = suite.service.DeleteAttribute(created.ID)
	suite.True(IsCode(err, ErrCodeCannotDelete))
}

func (suite *AttributeServiceTestSuite) TestDeleteAttribute() {
	created, err := suite.service.CreateAttribute(&CreateAttributeRequest{
		Name:   "Color",
		Values: []string{"Red"},
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteAttribute(created.ID))

	_, err = suite.service.GetAttribute(created.ID)
	suite.True(IsCode(err, ErrCodeNotFound))

	var count int64
	suite.Require().NoError(
		suite.db.Model(&models.AttributeValue{}).Where("attribute_id = ?", created.ID).Count(&count).Error)
	suite.Zero(count)
}

func TestAttributeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AttributeServiceTestSuite))
}
