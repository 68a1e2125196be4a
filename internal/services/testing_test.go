// internal/services/testing_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vervecommerce/verve-backend/internal/models"
)

// newTestDB opens a private in-memory sqlite store and migrates the
// catalog schema. The coupon model carries postgres array columns, so the
// coupon tests migrate a narrow row type of their own.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Attribute{},
		&models.AttributeValue{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariant{},
		&models.VariantAttributeValue{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: slug, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category %q: %v", name, err)
	}
	return category
}
