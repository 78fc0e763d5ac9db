package service

import (
	"errors"
	"fmt"

	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/internal/app/repository"
	"github.com/tulshop/shoppingcart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrCartCompleted   = errors.New("cart is already completed")
	ErrProductGone     = errors.New("cart references a deleted product")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// ProductQuantity pairs a cart line's product with its quantity. Product is
// nil when the catalog record was deleted after the line was added.
type ProductQuantity struct {
	Product  *model.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type CartService interface {
	CreateCart() (*model.Cart, error)
	GetCart(id string) (*model.Cart, error)
	ListCarts() ([]model.Cart, error)
	AddProductToCart(cartID, productID string, quantity int) (*model.Cart, error)
	RemoveProductFromCart(cartID, productID string, quantity int) (*model.Cart, error)
	UpdateProductQuantityInCart(cartID, productID string, quantity int) (*model.Cart, error)
	GetCartProducts(cartID string) ([]ProductQuantity, error)
	GetTotalPrice(cartID string) (float64, error)
	Checkout(cartID string) (float64, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cartItemSvc CartItemService
	db          *gorm.DB
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	cartItemSvc CartItemService,
	db *gorm.DB,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cartItemSvc: cartItemSvc,
		db:          db,
	}
}

func (s *cartService) CreateCart() (*model.Cart, error) {
	logger.Info("Creating cart")

	cart := &model.Cart{State: model.CartStatePending}
	if err := s.cartRepo.Create(cart); err != nil {
		logger.Error("Failed to create cart", err)
		return nil, err
	}

	logger.Info("Cart created successfully", map[string]interface{}{
		"cart_id": cart.ID,
	})
	return cart, nil
}

func (s *cartService) GetCart(id string) (*model.Cart, error) {
	logger.Debug("Fetching cart by ID", map[string]interface{}{
		"cart_id": id,
	})

	cart, err := s.cartRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart not found", map[string]interface{}{
				"cart_id": id,
			})
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"cart_id": id,
		})
		return nil, err
	}
	return cart, nil
}

func (s *cartService) ListCarts() ([]model.Cart, error) {
	logger.Debug("Listing carts")

	carts, err := s.cartRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list carts", err)
		return nil, err
	}

	logger.Info("Carts listed", map[string]interface{}{
		"count": len(carts),
	})
	return carts, nil
}

// openCart resolves a cart that is still accepting line-item mutations.
func (s *cartService) openCart(cartID string) (*model.Cart, error) {
	cart, err := s.GetCart(cartID)
	if err != nil {
		return nil, err
	}
	if cart.Completed() {
		logger.Warn("Cart mutation rejected: cart is completed", map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, ErrCartCompleted
	}
	return cart, nil
}

func (s *cartService) AddProductToCart(cartID, productID string, quantity int) (*model.Cart, error) {
	logger.Info("Adding product to cart", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.openCart(cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.resolveProduct(productID)
	if err != nil {
		return nil, err
	}

	if err := s.cartItemSvc.AddProduct(cart, product, quantity); err != nil {
		return nil, err
	}

	return s.GetCart(cartID)
}

// RemoveProductFromCart drops the product's entire line item from the cart.
// The quantity parameter is accepted for interface symmetry but ignored:
// removal is all-or-nothing, never a partial decrement.
func (s *cartService) RemoveProductFromCart(cartID, productID string, quantity int) (*model.Cart, error) {
	logger.Info("Removing product from cart", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	cart, err := s.openCart(cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.resolveProduct(productID)
	if err != nil {
		return nil, err
	}

	if err := s.cartItemSvc.RemoveProduct(cart, product); err != nil {
		return nil, err
	}

	return s.GetCart(cartID)
}

func (s *cartService) UpdateProductQuantityInCart(cartID, productID string, quantity int) (*model.Cart, error) {
	logger.Info("Updating product quantity in cart", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.openCart(cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.resolveProduct(productID)
	if err != nil {
		return nil, err
	}

	if err := s.cartItemSvc.UpdateQuantity(cart, product, quantity); err != nil {
		return nil, err
	}

	return s.GetCart(cartID)
}

// resolveProduct resolves a product for cart operations.
func (s *cartService) resolveProduct(productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found for cart operation", map[string]interface{}{
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for cart operation", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return product, nil
}

func (s *cartService) GetCartProducts(cartID string) ([]ProductQuantity, error) {
	logger.Debug("Fetching cart products", map[string]interface{}{
		"cart_id": cartID,
	})

	if _, err := s.GetCart(cartID); err != nil {
		return nil, err
	}

	items, err := s.cartItemSvc.ListByCart(cartID)
	if err != nil {
		return nil, err
	}

	products := make([]ProductQuantity, 0, len(items))
	for _, item := range items {
		products = append(products, ProductQuantity{
			Product:  item.Product,
			Quantity: item.Quantity,
		})
	}

	logger.Info("Cart products fetched", map[string]interface{}{
		"cart_id": cartID,
		"count":   len(products),
	})
	return products, nil
}

// GetTotalPrice sums effective price times quantity over the cart's line
// items, in insertion order. A line whose product record no longer exists
// fails the whole computation: a stale cart must not silently under-charge.
func (s *cartService) GetTotalPrice(cartID string) (float64, error) {
	logger.Debug("Computing cart total price", map[string]interface{}{
		"cart_id": cartID,
	})

	if _, err := s.GetCart(cartID); err != nil {
		return 0, err
	}

	items, err := s.cartItemSvc.ListByCart(cartID)
	if err != nil {
		return 0, err
	}

	total, err := totalOf(items)
	if err != nil {
		logger.Warn("Cart total unavailable: deleted product in cart", map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}

	logger.Info("Cart total price computed", map[string]interface{}{
		"cart_id":     cartID,
		"total_price": total,
		"items":       len(items),
	})
	return total, nil
}

func totalOf(items []model.CartItem) (float64, error) {
	var total float64
	for _, item := range items {
		if item.Product == nil {
			return 0, ErrProductGone
		}
		total += item.Product.SellingPrice() * float64(item.Quantity)
	}
	return total, nil
}

// Checkout finalizes a cart: it computes the total price and flips the state
// to COMPLETED in one transaction. The returned total is the one computed
// before the flip. A completed cart cannot be checked out again.
func (s *cartService) Checkout(cartID string) (float64, error) {
	logger.Info("Checking out cart", map[string]interface{}{
		"cart_id": cartID,
	})

	tx := s.db.Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin checkout transaction", tx.Error, map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"cart_id": cartID,
			})
		}
	}()

	var cart model.Cart
	if err := tx.First(&cart, "id = ?", cartID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot checkout: cart not found", map[string]interface{}{
				"cart_id": cartID,
			})
			return 0, ErrCartNotFound
		}
		logger.Error("Failed to fetch cart for checkout", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}

	if cart.Completed() {
		tx.Rollback()
		logger.Warn("Cannot checkout: cart already completed", map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, ErrCartCompleted
	}

	var items []model.CartItem
	if err := tx.Where("cart_id = ?", cartID).
		Order("id ASC").
		Preload("Product").
		Find(&items).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to fetch cart items for checkout", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}

	total, err := totalOf(items)
	if err != nil {
		tx.Rollback()
		logger.Warn("Cannot checkout: deleted product in cart", map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}

	if err := tx.Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("state", model.CartStateCompleted).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to complete cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit checkout transaction", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}

	logger.Info("Cart checked out successfully", map[string]interface{}{
		"cart_id":     cartID,
		"total_price": total,
		"items":       len(items),
	})
	return total, nil
}
