// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"

	// Store
	KeyStoreUnavailable   = "store.unavailable"
	KeyStoreNotConfigured = "store.not_configured"
	KeyStoreDisconnected  = "store.disconnected"
	KeyStoreSetupFailed   = "store.setup_failed"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthFailed             = "auth.failed"
	KeyAuthLogoutFailed       = "auth.logout_failed"

	// Products
	KeyProductNotFound   = "product.not_found"
	KeyProductInvalidID  = "product.invalid_id"
	KeyProductOutOfStock = "product.out_of_stock"
	KeyProductSeeded     = "product.seeded"
	KeyProductSeedSkip   = "product.seed_skipped"

	// Cart
	KeyCartItemNotFound    = "cart_item.not_found"
	KeyCartInvalidQuantity = "cart.invalid_quantity"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileRequired     = "file.required"
	KeyFileInvalidType  = "file.invalid_type"
	KeyFileTooLarge     = "file.too_large"
)
