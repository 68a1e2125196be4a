// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAccessDenied           = "auth.access_denied"

	// Categories
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyCategoryNotFound = "category.not_found"

	// Attributes
	KeyAttributeCreated  = "attribute.created"
	KeyAttributeUpdated  = "attribute.updated"
	KeyAttributeDeleted  = "attribute.deleted"
	KeyAttributeNotFound = "attribute.not_found"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Coupons
	KeyCouponCreated  = "coupon.created"
	KeyCouponUpdated  = "coupon.updated"
	KeyCouponDeleted  = "coupon.deleted"
	KeyCouponRedeemed = "coupon.redeemed"
	KeyCouponNotFound = "coupon.not_found"

	// Rate limiting
	KeyRateLimited = "rate.limited"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)

// defaultTranslations is the built-in English catalog. Locale files, when
// present, override these.
var defaultTranslations = map[string]string{
	KeyAuthRequired:           "Authentication required",
	KeyAuthInvalidToken:       "Invalid authentication token",
	KeyAuthTokenExpired:       "Authentication token expired",
	KeyAuthInvalidCredentials: "Invalid email or password",
	KeyAuthLoginSuccess:       "Logged in successfully",
	KeyAuthRegisterSuccess:    "Account created successfully",
	KeyAccessDenied:           "Access denied",

	KeyCategoryCreated:  "Category created successfully",
	KeyCategoryUpdated:  "Category updated successfully",
	KeyCategoryDeleted:  "Category deleted successfully",
	KeyCategoryNotFound: "Category not found",

	KeyAttributeCreated:  "Attribute created successfully",
	KeyAttributeUpdated:  "Attribute updated successfully",
	KeyAttributeDeleted:  "Attribute deleted successfully",
	KeyAttributeNotFound: "Attribute not found",

	KeyProductCreated:  "Product created successfully",
	KeyProductUpdated:  "Product updated successfully",
	KeyProductDeleted:  "Product deleted successfully",
	KeyProductNotFound: "Product not found",

	KeyCouponCreated:  "Coupon created successfully",
	KeyCouponUpdated:  "Coupon updated successfully",
	KeyCouponDeleted:  "Coupon deleted successfully",
	KeyCouponRedeemed: "Coupon redeemed successfully",
	KeyCouponNotFound: "Coupon not found",

	KeyRateLimited: "Too many requests, please try again later",

	KeyValidationRequired: "%s is required",
	KeyValidationInvalid:  "Invalid %s",

	KeyFileUploadSuccess: "File uploaded successfully",
	KeyFileUploadFailed:  "File upload failed",
	KeyFileInvalidType:   "File type not allowed",
	KeyFileTooLarge:      "File exceeds the maximum allowed size",
}
