package controller

import (
	e "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tulshop/shoppingcart-backend/internal/app/service"
	"github.com/tulshop/shoppingcart-backend/internal/errors"
	"github.com/tulshop/shoppingcart-backend/internal/middleware"
	"github.com/tulshop/shoppingcart-backend/pkg/logger"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type CartProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// ListCarts returns all carts
// GET /api/v1/carts
func (ctrl *CartController) ListCarts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	carts, err := ctrl.cartService.ListCarts()
	if err != nil {
		log.Error("Failed to fetch carts", err, nil)
		errors.InternalError(c, "Failed to fetch carts")
		return
	}

	log.Info("Carts fetched successfully", map[string]interface{}{
		"count": len(carts),
	})

	c.JSON(http.StatusOK, gin.H{
		"carts": carts,
		"count": len(carts),
	})
}

// GetCart returns a cart by ID
// GET /api/v1/carts/:id
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	cart, err := ctrl.cartService.GetCart(id)
	if err != nil {
		if e.Is(err, service.ErrCartNotFound) {
			log.Warn("Cart not found", map[string]interface{}{
				"cart_id": id,
			})
			errors.NotFound(c, errors.CartNotFound, "Cart not found")
			return
		}
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"cart_id": id,
		})
		errors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// CreateCart creates a new empty cart in the PENDING state
// POST /api/v1/carts
func (ctrl *CartController) CreateCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cart, err := ctrl.cartService.CreateCart()
	if err != nil {
		log.Error("Failed to create cart", err, nil)
		errors.InternalError(c, "Failed to create cart")
		return
	}

	log.Info("Cart created successfully", map[string]interface{}{
		"cart_id": cart.ID,
	})

	c.Header("Location", fmt.Sprintf("/api/v1/carts/%s", cart.ID))
	c.JSON(http.StatusCreated, gin.H{
		"cart": cart,
	})
}

// cartMutationError maps workflow errors shared by the item mutations.
// Returns true when the error was handled.
func cartMutationError(c *gin.Context, log *logger.Logger, err error, cartID string) bool {
	switch {
	case e.Is(err, service.ErrCartNotFound):
		log.Warn("Cart not found", map[string]interface{}{
			"cart_id": cartID,
		})
		errors.NotFound(c, errors.CartNotFound, "Cart not found")
	case e.Is(err, service.ErrProductNotFound):
		log.Warn("Product not found for cart operation", map[string]interface{}{
			"cart_id": cartID,
		})
		errors.NotFound(c, errors.ProductNotFound, "Product not found")
	case e.Is(err, service.ErrCartCompleted):
		log.Warn("Cart is already completed", map[string]interface{}{
			"cart_id": cartID,
		})
		errors.Conflict(c, errors.CartCompleted, "Cart is already completed")
	case e.Is(err, service.ErrCartItemNotFound):
		log.Warn("Product is not in the cart", map[string]interface{}{
			"cart_id": cartID,
		})
		errors.NotFound(c, errors.CartItemNotFound, "Product is not in the cart")
	case e.Is(err, service.ErrInvalidQuantity):
		log.Warn("Invalid quantity for cart operation", map[string]interface{}{
			"cart_id": cartID,
		})
		errors.BadRequest(c, errors.ValidationInvalidRange, "Quantity must be a positive integer")
	default:
		return false
	}
	return true
}

// AddProduct adds a product to a cart, merging quantities on repeat
// POST /api/v1/carts/:id/products
func (ctrl *CartController) AddProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	var req CartProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add product request", map[string]interface{}{
			"cart_id": id,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Adding product to cart", map[string]interface{}{
		"cart_id":    id,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	cart, err := ctrl.cartService.AddProductToCart(id, req.ProductID, req.Quantity)
	if err != nil {
		if cartMutationError(c, log, err, id) {
			return
		}
		log.Error("Failed to add product to cart", err, map[string]interface{}{
			"cart_id":    id,
			"product_id": req.ProductID,
		})
		errors.ParseAndRespond(c, err, "add product to cart")
		return
	}

	log.Info("Product added to cart successfully", map[string]interface{}{
		"cart_id":    id,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"cart": cart,
	})
}

// RemoveProduct removes the whole line item for a product from a cart
// DELETE /api/v1/carts/:id/products/:product_id
func (ctrl *CartController) RemoveProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	productID := c.Param("product_id")

	log.Debug("Removing product from cart", map[string]interface{}{
		"cart_id":    id,
		"product_id": productID,
	})

	_, err := ctrl.cartService.RemoveProductFromCart(id, productID, 1)
	if err != nil {
		if cartMutationError(c, log, err, id) {
			return
		}
		log.Error("Failed to remove product from cart", err, map[string]interface{}{
			"cart_id":    id,
			"product_id": productID,
		})
		errors.InternalError(c, "Failed to remove product from cart")
		return
	}

	log.Info("Product removed from cart successfully", map[string]interface{}{
		"cart_id":    id,
		"product_id": productID,
	})

	c.Status(http.StatusNoContent)
}

// UpdateQuantity overwrites a line item's quantity; absent lines are a no-op
// PUT /api/v1/carts/:id/products
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	var req CartProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update quantity request", map[string]interface{}{
			"cart_id": id,
			"error":   err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Updating product quantity in cart", map[string]interface{}{
		"cart_id":    id,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	cart, err := ctrl.cartService.UpdateProductQuantityInCart(id, req.ProductID, req.Quantity)
	if err != nil {
		if cartMutationError(c, log, err, id) {
			return
		}
		log.Error("Failed to update product quantity in cart", err, map[string]interface{}{
			"cart_id":    id,
			"product_id": req.ProductID,
		})
		errors.InternalError(c, "Failed to update product quantity in cart")
		return
	}

	log.Info("Product quantity updated successfully", map[string]interface{}{
		"cart_id":    id,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"cart": cart,
	})
}

// GetCartProducts returns the cart's (product, quantity) pairs
// GET /api/v1/carts/:id/products
func (ctrl *CartController) GetCartProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	products, err := ctrl.cartService.GetCartProducts(id)
	if err != nil {
		if e.Is(err, service.ErrCartNotFound) {
			log.Warn("Cart not found", map[string]interface{}{
				"cart_id": id,
			})
			errors.NotFound(c, errors.CartNotFound, "Cart not found")
			return
		}
		log.Error("Failed to fetch cart products", err, map[string]interface{}{
			"cart_id": id,
		})
		errors.InternalError(c, "Failed to fetch cart products")
		return
	}

	log.Info("Cart products fetched successfully", map[string]interface{}{
		"cart_id": id,
		"count":   len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"cart_id":  id,
		"products": products,
		"count":    len(products),
	})
}

// GetTotalPrice returns the cart's current total
// GET /api/v1/carts/:id/total-price
func (ctrl *CartController) GetTotalPrice(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	total, err := ctrl.cartService.GetTotalPrice(id)
	if err != nil {
		if e.Is(err, service.ErrCartNotFound) {
			log.Warn("Cart not found", map[string]interface{}{
				"cart_id": id,
			})
			errors.NotFound(c, errors.CartNotFound, "Cart not found")
			return
		}
		if e.Is(err, service.ErrProductGone) {
			log.Warn("Cart total unavailable: deleted product in cart", map[string]interface{}{
				"cart_id": id,
			})
			errors.Conflict(c, errors.CartProductGone, "Cart references a deleted product")
			return
		}
		log.Error("Failed to compute cart total", err, map[string]interface{}{
			"cart_id": id,
		})
		errors.InternalError(c, "Failed to compute cart total")
		return
	}

	log.Info("Cart total computed successfully", map[string]interface{}{
		"cart_id":     id,
		"total_price": total,
	})

	c.JSON(http.StatusOK, gin.H{
		"cart_id":     id,
		"total_price": total,
	})
}

// Checkout finalizes the cart and returns the charged total
// POST /api/v1/carts/:id/checkout
func (ctrl *CartController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	total, err := ctrl.cartService.Checkout(id)
	if err != nil {
		if e.Is(err, service.ErrCartNotFound) {
			log.Warn("Cannot checkout: cart not found", map[string]interface{}{
				"cart_id": id,
			})
			errors.NotFound(c, errors.CartNotFound, "Cart not found")
			return
		}
		if e.Is(err, service.ErrCartCompleted) {
			log.Warn("Cannot checkout: cart already completed", map[string]interface{}{
				"cart_id": id,
			})
			errors.Conflict(c, errors.CartCompleted, "Cart is already completed")
			return
		}
		if e.Is(err, service.ErrProductGone) {
			log.Warn("Cannot checkout: deleted product in cart", map[string]interface{}{
				"cart_id": id,
			})
			errors.Conflict(c, errors.CartProductGone, "Cart references a deleted product")
			return
		}
		log.Error("Failed to checkout cart", err, map[string]interface{}{
			"cart_id": id,
		})
		errors.InternalError(c, "Failed to checkout cart")
		return
	}

	log.Info("Cart checked out successfully", map[string]interface{}{
		"cart_id":     id,
		"total_price": total,
	})

	c.JSON(http.StatusOK, gin.H{
		"cart_id":     id,
		"total_price": total,
	})
}
