package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Coupon is a checkout discount code. Redemption is counted at order
// submission, not when the code is applied to a cart.
type Coupon struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Code           string            `gorm:"size:100;unique;not null" json:"code"`
	Description    *string           `gorm:"type:text" json:"description,omitempty"`
	Type           enum.DiscountType `gorm:"default:0" json:"type"`
	Value          decimal.Decimal   `gorm:"type:decimal(15,4);not null" json:"value"`
	ValidFrom      *time.Time        `json:"valid_from,omitempty"`
	ValidUntil     *time.Time        `json:"valid_until,omitempty"`
	MaxRedemptions *int              `json:"max_redemptions,omitempty"`
	TimesUsed      int               `gorm:"default:0" json:"times_used"`
	Active         bool              `gorm:"default:true" json:"active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new coupon
func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Coupon model
func (Coupon) TableName() string {
	return "coupons"
}

// IsRedeemable reports whether the coupon can be applied at the given time
func (c *Coupon) IsRedeemable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return false
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return false
	}
	if c.MaxRedemptions != nil && c.TimesUsed >= *c.MaxRedemptions {
		return false
	}
	return true
}
