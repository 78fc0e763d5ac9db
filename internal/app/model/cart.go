package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartState string

const (
	CartStatePending   CartState = "PENDING"
	CartStateCompleted CartState = "COMPLETED"
)

type Cart struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	State     CartState      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Cart) TableName() string {
	return "carts"
}

func (c *Cart) Completed() bool {
	return c.State == CartStateCompleted
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.State == "" {
		c.State = CartStatePending
	}
	return nil
}

// CartItem links one cart to one product with a quantity. A product appears
// at most once per cart; repeated adds merge into the existing row.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships. Product is a pointer: the catalog record may have been
	// deleted after the item was added, in which case it preloads as nil.
	Cart    Cart     `gorm:"foreignKey:CartID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
