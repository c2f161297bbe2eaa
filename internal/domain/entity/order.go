package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a submitted checkout. Cart contents are copied into order items
// at submission time and the cart is only cleared once the order and its
// invoice have both been written.
type Order struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID     *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	InvoiceID      *uuid.UUID        `gorm:"type:uuid" json:"invoice_id,omitempty"`
	Number         string            `gorm:"size:100;unique;not null" json:"number"`
	Status         enum.OrderStatus  `gorm:"default:0" json:"status"`
	CouponCode     *string           `gorm:"size:100" json:"coupon_code,omitempty"`
	DiscountType   enum.DiscountType `gorm:"default:0" json:"discount_type"`
	DiscountValue  decimal.Decimal   `gorm:"type:decimal(15,4);default:0" json:"discount_value"`
	TaxPercent     decimal.Decimal   `gorm:"type:decimal(5,2);default:0" json:"tax_percent"`
	SubTotal       decimal.Decimal   `gorm:"type:decimal(15,4);default:0" json:"sub_total"`
	DiscountAmount decimal.Decimal   `gorm:"type:decimal(15,4);default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal   `gorm:"type:decimal(15,4);default:0" json:"tax_amount"`
	Total          decimal.Decimal   `gorm:"type:decimal(15,4);default:0" json:"total"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	User     User        `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Invoice  *Invoice    `gorm:"foreignKey:InvoiceID" json:"invoice,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of a submitted order
type OrderItem struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    *uuid.UUID        `gorm:"type:uuid;index" json:"product_id,omitempty"`
	ItemType     enum.CartItemType `gorm:"default:0" json:"item_type"`
	Name         string            `gorm:"size:255;not null" json:"name"`
	BillingCycle enum.BillingCycle `gorm:"default:0" json:"billing_cycle"`
	Quantity     int               `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal   `gorm:"type:decimal(15,4);not null" json:"unit_price"`
	LineTotal    decimal.Decimal   `gorm:"type:decimal(15,4);not null" json:"line_total"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`

	// Relationships
	Order   Order    `gorm:"foreignKey:OrderID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
