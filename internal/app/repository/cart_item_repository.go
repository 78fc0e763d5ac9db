package repository

import (
	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartItemRepository interface {
	Create(item *model.CartItem) error
	FindByCartID(cartID string) ([]model.CartItem, error)
	FindByCartAndProduct(cartID, productID string) (*model.CartItem, error)
	Update(item *model.CartItem) error
	Delete(id uint) error
}

type cartItemRepository struct {
	db *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepository {
	return &cartItemRepository{db: db}
}

func (r *cartItemRepository) Create(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
	})
	return nil
}

// FindByCartID returns a cart's line items in insertion order, with their
// products preloaded. Items whose product was deleted keep a nil Product.
func (r *cartItemRepository) FindByCartID(cartID string) ([]model.CartItem, error) {
	logger.Debug("Finding cart items by cart ID in database", map[string]interface{}{
		"cart_id": cartID,
	})

	var items []model.CartItem
	err := r.db.Where("cart_id = ?", cartID).
		Order("id ASC").
		Preload("Product").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items by cart ID in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	logger.Debug("Cart items found by cart ID in database", map[string]interface{}{
		"cart_id": cartID,
		"count":   len(items),
	})
	return items, nil
}

func (r *cartItemRepository) FindByCartAndProduct(cartID, productID string) (*model.CartItem, error) {
	logger.Debug("Finding cart item by cart and product in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})

	var item model.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		logger.Error("Failed to find cart item by cart and product in database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return nil, err
	}
	return &item, nil
}

func (r *cartItemRepository) Update(item *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartItemRepository) Delete(id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}
	return nil
}
