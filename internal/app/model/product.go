package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	SKU         string  `gorm:"column:sku" json:"sku"`
	Description string  `gorm:"type:text" json:"description"`
	HasDiscount bool    `gorm:"not null;default:false" json:"has_discount"`
	Price       float64 `gorm:"not null" json:"price"`

	// Never persisted: recomputed from Price and HasDiscount on every read.
	EffectivePrice float64 `gorm:"-" json:"effective_price"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	CartItems []CartItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// SellingPrice returns the price actually charged: half the stored price
// while the discount flag is set.
func (p *Product) SellingPrice() float64 {
	if p.HasDiscount {
		return p.Price * 0.5
	}
	return p.Price
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.EffectivePrice = p.SellingPrice()
	return nil
}

func (p *Product) AfterSave(tx *gorm.DB) error {
	p.EffectivePrice = p.SellingPrice()
	return nil
}
