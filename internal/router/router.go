// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vervecommerce/verve-backend/internal/config"
	"github.com/vervecommerce/verve-backend/internal/handlers"
	"github.com/vervecommerce/verve-backend/internal/middleware"
	"github.com/vervecommerce/verve-backend/internal/models"
	"github.com/vervecommerce/verve-backend/internal/services"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	categoryService := services.NewCategoryService(db)
	attributeService := services.NewAttributeService(db)
	productService := services.NewProductService(db)
	couponService := services.NewCouponService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	attributeHandler := handlers.NewAttributeHandler(attributeService)
	productHandler := handlers.NewProductHandler(productService, storageService, cfg)
	couponHandler := handlers.NewCouponHandler(couponService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	staff := []models.UserRole{models.UserRoleSuperAdmin, models.UserRoleSeller}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("/tree", categoryHandler.GetTree)
			categories.GET("/:id", categoryHandler.GetCategory)

			protected := categories.Group("")
			protected.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserRoleSuperAdmin), middleware.CatalogWriteRateLimit())
			{
				protected.POST("", categoryHandler.CreateCategory)
				protected.PUT("/:id", categoryHandler.UpdateCategory)
				protected.DELETE("/:id", categoryHandler.DeleteCategory)
			}
		}

		// Attribute routes
		attributes := v1.Group("/attributes")
		{
			attributes.GET("", attributeHandler.ListAttributes)
			attributes.GET("/:id", attributeHandler.GetAttribute)

			protected := attributes.Group("")
			protected.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserRoleSuperAdmin), middleware.CatalogWriteRateLimit())
			{
				protected.POST("", attributeHandler.CreateAttribute)
				protected.PUT("/:id", attributeHandler.UpdateAttribute)
				protected.DELETE("/:id", attributeHandler.DeleteAttribute)
			}
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.ListProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/slug/:slug", productHandler.GetProductBySlug)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired(), middleware.RoleRequired(staff...), middleware.CatalogWriteRateLimit())
			{
				protected.POST("", productHandler.CreateProduct)
				protected.PUT("/:id", productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
				protected.POST("/variant-matrix", productHandler.PreviewVariantMatrix)
				protected.POST("/upload-image", middleware.UploadRateLimit(), productHandler.UploadImage)
			}
		}

		// Coupon routes
		coupons := v1.Group("/coupons")
		{
			coupons.POST("/validate", middleware.OptionalAuth(), couponHandler.ValidateCoupon)

			protected := coupons.Group("")
			protected.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserRoleSuperAdmin))
			{
				protected.GET("", couponHandler.ListCoupons)
				protected.GET("/:id", couponHandler.GetCoupon)
				protected.POST("", couponHandler.CreateCoupon)
				protected.PUT("/:id", couponHandler.UpdateCoupon)
				protected.POST("/:id/redeem", couponHandler.RedeemCoupon)
				protected.DELETE("/:id", couponHandler.DeleteCoupon)
			}
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserRoleSuperAdmin))
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
		}
	}

	// Locally stored uploads are served from the configured directory.
	r.Static("/static", cfg.Upload.LocalDir)

	return r
}
