package service

import (
	"errors"
	"strings"

	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/internal/app/repository"
	"github.com/tulshop/shoppingcart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductHasID      = errors.New("a new product cannot already have an id")
	ErrProductIDMismatch = errors.New("product id does not match")
)

type ProductService interface {
	ListProducts() ([]model.Product, error)
	GetProductByID(id string) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id string) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts() ([]model.Product, error) {
	logger.Debug("Listing products")

	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id string) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

// CreateProduct stores a new catalog entry. The identifier is always
// generated here; a caller-supplied id is rejected.
func (s *productService) CreateProduct(product *model.Product) error {
	if product.ID != "" {
		logger.Warn("Rejected product creation with supplied ID", map[string]interface{}{
			"product_id": product.ID,
		})
		return ErrProductHasID
	}

	product.Name = strings.TrimSpace(product.Name)

	logger.Info("Creating product", map[string]interface{}{
		"name":         product.Name,
		"sku":          product.SKU,
		"price":        product.Price,
		"has_discount": product.HasDiscount,
	})

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

// UpdateProduct replaces the stored record with the given one.
func (s *productService) UpdateProduct(product *model.Product) error {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot update: product not found", map[string]interface{}{
				"product_id": product.ID,
			})
			return ErrProductNotFound
		}
		logger.Error("Failed to fetch product for update", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	product.Name = strings.TrimSpace(product.Name)
	product.CreatedAt = existing.CreatedAt

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

// DeleteProduct removes a product. Deleting an absent id is not an error,
// which keeps the HTTP boundary idempotent.
func (s *productService) DeleteProduct(id string) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
