package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to their own messages.

const (
	// ==================== Cart (CART_) ====================
	CartNotFound     = "CART_NOT_FOUND"      // cart id does not resolve
	CartCompleted    = "CART_COMPLETED"      // cart already checked out
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // product is not in the cart
	CartProductGone  = "CART_PRODUCT_GONE"   // line item references a deleted product

	// ==================== Product (PRODUCT_) ====================
	ProductNotFound   = "PRODUCT_NOT_FOUND"   // product id does not resolve
	ProductHasID      = "PRODUCT_HAS_ID"      // new product supplied its own id
	ProductIDMismatch = "PRODUCT_ID_MISMATCH" // body id differs from path id

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // malformed identifier
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE" // value out of range

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
