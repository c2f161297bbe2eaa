package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one pre-checkout selection, persisted per user so a page
// reload does not lose in-progress selections. Adding an existing product
// to the cart increments its quantity instead of inserting a second row.
type CartItem struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null;index:idx_cart_user_product,priority:1" json:"user_id"`
	ProductID    *uuid.UUID        `gorm:"type:uuid;index:idx_cart_user_product,priority:2" json:"product_id,omitempty"`
	ItemType     enum.CartItemType `gorm:"default:0" json:"item_type"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	BillingCycle enum.BillingCycle `gorm:"default:0" json:"billing_cycle"`
	Quantity     int               `gorm:"not null;default:1" json:"quantity"`
	UnitPrice    decimal.Decimal   `gorm:"type:decimal(15,4);not null" json:"unit_price"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new cart item
func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CartItem model
func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal returns quantity times unit price
func (ci *CartItem) LineTotal() decimal.Decimal {
	return ci.UnitPrice.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
