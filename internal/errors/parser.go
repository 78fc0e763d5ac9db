package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a safe message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError turns a persistence error into a client-safe code and message.
// context is a short hint ("cart", "product", "create product", ...) used to
// pick the most specific message without leaking database internals.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errLower := strings.ToLower(errStr)

	// 1. GORM errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// 2. Unique constraint violation (postgres 23505, sqlite UNIQUE)
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		if strings.Contains(errLower, "cart_items") || strings.Contains(errLower, "idx_cart_items_cart_product") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "The product is already in this cart",
			}
		}
		if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
			return ErrorInfo{
				Code:    ResourceAlreadyExists,
				Message: "A record with this identifier already exists",
			}
		}
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "The record already exists",
		}
	}

	// 3. Foreign key constraint violation (postgres 23503)
	if strings.Contains(errLower, "foreign key constraint") {
		if strings.Contains(errLower, "cart_id") {
			return ErrorInfo{Code: CartNotFound, Message: "The referenced cart does not exist"}
		}
		if strings.Contains(errLower, "product_id") {
			return ErrorInfo{Code: ProductNotFound, Message: "The referenced product does not exist"}
		}
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "A referenced record does not exist",
		}
	}

	// 4. Not null constraint violation (postgres 23502)
	if strings.Contains(errLower, "null value") && strings.Contains(errLower, "not-null constraint") {
		if strings.Contains(errLower, "name") {
			return ErrorInfo{Code: ValidationRequired, Message: "Name is required"}
		}
		if strings.Contains(errLower, "price") {
			return ErrorInfo{Code: ValidationRequired, Message: "Price is required"}
		}
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// 5. Connectivity
	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The database is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: defaultErrorMessage(context),
	}
}

// ParseAndRespond parses a persistence error and writes the mapped response.
// Controllers use it for errors that are not workflow sentinels.
func ParseAndRespond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, statusForCode(info.Code), info.Code, info.Message)
}

func statusForCode(code string) int {
	switch code {
	case ResourceNotFound, CartNotFound, ProductNotFound, CartItemNotFound:
		return http.StatusNotFound
	case ResourceConflict, ResourceAlreadyExists:
		return http.StatusConflict
	case ValidationRequired, ValidationInvalidInput, ValidationInvalidID, ValidationInvalidRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "cart item") {
		return "Cart item not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart not found"
	}
	if strings.Contains(contextLower, "product") {
		return "Product not found"
	}
	return "The requested record was not found"
}

func defaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") {
		return "Creation failed. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Update failed. Please try again later"
	}
	if strings.Contains(contextLower, "delete") {
		return "Deletion failed. Please try again later"
	}
	if strings.Contains(contextLower, "checkout") {
		return "Checkout failed. Please try again later"
	}
	return "An internal error occurred. Please try again later"
}
