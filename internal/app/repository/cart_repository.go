package repository

import (
	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cart *model.Cart) error
	FindAll() ([]model.Cart, error)
	FindByID(id string) (*model.Cart, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	logger.Debug("Creating cart in database")

	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err)
		return err
	}

	logger.Debug("Cart created in database", map[string]interface{}{
		"cart_id": cart.ID,
		"state":   cart.State,
	})
	return nil
}

func (r *cartRepository) FindAll() ([]model.Cart, error) {
	logger.Debug("Finding all carts in database")

	var carts []model.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	}).Preload("Items.Product").Find(&carts).Error
	if err != nil {
		logger.Error("Failed to find carts in database", err)
		return nil, err
	}

	logger.Debug("Carts found in database", map[string]interface{}{
		"count": len(carts),
	})
	return carts, nil
}

func (r *cartRepository) FindByID(id string) (*model.Cart, error) {
	logger.Debug("Finding cart by ID in database", map[string]interface{}{
		"cart_id": id,
	})

	var cart model.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	}).Preload("Items.Product").First(&cart, "id = ?", id).Error
	if err != nil {
		logger.Error("Failed to find cart by ID in database", err, map[string]interface{}{
			"cart_id": id,
		})
		return nil, err
	}
	return &cart, nil
}
