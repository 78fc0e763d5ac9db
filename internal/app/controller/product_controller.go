package controller

import (
	e "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/internal/app/service"
	"github.com/tulshop/shoppingcart-backend/internal/errors"
	"github.com/tulshop/shoppingcart-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	HasDiscount bool    `json:"has_discount"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// GetAllProducts returns all products
// GET /api/v1/products
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.ListProducts()
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		errors.InternalError(c, "Failed to fetch products")
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProductByID returns a product by ID
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		if e.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		errors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a new product
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product creation request", map[string]interface{}{
			"error": err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if req.ID != "" {
		log.Warn("Product creation rejected: ID supplied", map[string]interface{}{
			"product_id": req.ID,
		})
		errors.BadRequest(c, errors.ProductHasID, "A new product cannot already have an ID")
		return
	}

	log.Debug("Creating product", map[string]interface{}{
		"name":         req.Name,
		"sku":          req.SKU,
		"price":        req.Price,
		"has_discount": req.HasDiscount,
	})

	product := &model.Product{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		HasDiscount: req.HasDiscount,
		Price:       req.Price,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		if e.Is(err, service.ErrProductHasID) {
			errors.BadRequest(c, errors.ProductHasID, "A new product cannot already have an ID")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		errors.ParseAndRespond(c, err, "create product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.Header("Location", fmt.Sprintf("/api/v1/products/%s", product.ID))
	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct replaces a product record; the body ID must match the path
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if req.ID == "" {
		log.Warn("Product update rejected: missing ID in body", map[string]interface{}{
			"product_id": id,
		})
		errors.BadRequest(c, errors.ValidationRequired, "Product ID is required for update")
		return
	}

	if req.ID != id {
		log.Warn("Product update rejected: ID mismatch", map[string]interface{}{
			"path_id": id,
			"body_id": req.ID,
		})
		errors.BadRequest(c, errors.ProductIDMismatch, "Product ID does not match the path")
		return
	}

	product := &model.Product{
		ID:          req.ID,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		HasDiscount: req.HasDiscount,
		Price:       req.Price,
	}

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		if e.Is(err, service.ErrProductNotFound) {
			log.Warn("Cannot update: product not found", map[string]interface{}{
				"product_id": id,
			})
			errors.NotFound(c, errors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		errors.ParseAndRespond(c, err, "update product")
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct deletes a product
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		errors.InternalError(c, "Failed to delete product")
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})

	c.Status(http.StatusNoContent)
}
