package service

import (
	"errors"

	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/internal/app/repository"
	"github.com/tulshop/shoppingcart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartItemService is the line-item ledger. All operations take an already
// resolved cart and product; state and existence checks belong to the callers.
type CartItemService interface {
	AddProduct(cart *model.Cart, product *model.Product, quantity int) error
	RemoveProduct(cart *model.Cart, product *model.Product) error
	UpdateQuantity(cart *model.Cart, product *model.Product, quantity int) error
	ListByCart(cartID string) ([]model.CartItem, error)
}

type cartItemService struct {
	cartItemRepo repository.CartItemRepository
}

func NewCartItemService(cartItemRepo repository.CartItemRepository) CartItemService {
	return &cartItemService{cartItemRepo: cartItemRepo}
}

// AddProduct attaches a product to a cart. A product occupies at most one
// line per cart, so adding it again merges the quantities.
func (s *cartItemService) AddProduct(cart *model.Cart, product *model.Product, quantity int) error {
	logger.Info("Adding product to cart", map[string]interface{}{
		"cart_id":    cart.ID,
		"product_id": product.ID,
		"quantity":   quantity,
	})

	existing, err := s.cartItemRepo.FindByCartAndProduct(cart.ID, product.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": product.ID,
		})
		return err
	}

	if existing != nil {
		logger.Debug("Merging quantity into existing cart item", map[string]interface{}{
			"cart_item_id": existing.ID,
			"old_qty":      existing.Quantity,
			"new_qty":      existing.Quantity + quantity,
		})
		existing.Quantity += quantity
		if err := s.cartItemRepo.Update(existing); err != nil {
			logger.Error("Failed to update cart item", err, map[string]interface{}{
				"cart_item_id": existing.ID,
			})
			return err
		}
		return nil
	}

	item := &model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  quantity,
	}

	if err := s.cartItemRepo.Create(item); err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": product.ID,
		})
		return err
	}

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_item_id": item.ID,
	})
	return nil
}

// RemoveProduct deletes the whole line item for the (cart, product) pair.
// There is no partial decrement: the requested quantity never matters here.
func (s *cartItemService) RemoveProduct(cart *model.Cart, product *model.Product) error {
	logger.Info("Removing product from cart", map[string]interface{}{
		"cart_id":    cart.ID,
		"product_id": product.ID,
	})

	item, err := s.cartItemRepo.FindByCartAndProduct(cart.ID, product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for removal", map[string]interface{}{
				"cart_id":    cart.ID,
				"product_id": product.ID,
			})
			return ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item for removal", err, map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": product.ID,
		})
		return err
	}

	if err := s.cartItemRepo.Delete(item.ID); err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_item_id": item.ID,
	})
	return nil
}

// UpdateQuantity overwrites the quantity of the line item for the
// (cart, product) pair. When no such line exists this is a no-op, matching
// the documented ledger behavior: no creation, no error.
func (s *cartItemService) UpdateQuantity(cart *model.Cart, product *model.Product, quantity int) error {
	logger.Info("Updating product quantity in cart", map[string]interface{}{
		"cart_id":    cart.ID,
		"product_id": product.ID,
		"quantity":   quantity,
	})

	item, err := s.cartItemRepo.FindByCartAndProduct(cart.ID, product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("No cart item to update, skipping", map[string]interface{}{
				"cart_id":    cart.ID,
				"product_id": product.ID,
			})
			return nil
		}
		logger.Error("Failed to fetch cart item for update", err, map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": product.ID,
		})
		return err
	}

	item.Quantity = quantity
	if err := s.cartItemRepo.Update(item); err != nil {
		logger.Error("Failed to update cart item quantity", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}

	logger.Info("Cart item quantity updated", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     quantity,
	})
	return nil
}

func (s *cartItemService) ListByCart(cartID string) ([]model.CartItem, error) {
	logger.Debug("Listing cart items", map[string]interface{}{
		"cart_id": cartID,
	})

	items, err := s.cartItemRepo.FindByCartID(cartID)
	if err != nil {
		logger.Error("Failed to list cart items", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}
	return items, nil
}
