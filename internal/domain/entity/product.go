package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a hosting plan or add-on in the storefront catalog
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	GroupID      *uuid.UUID      `gorm:"type:uuid;index" json:"group_id,omitempty"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Slug         string          `gorm:"size:255;unique;not null" json:"slug"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	MonthlyPrice decimal.Decimal `gorm:"type:decimal(15,4);default:0" json:"monthly_price"`
	AnnualPrice  decimal.Decimal `gorm:"type:decimal(15,4);default:0" json:"annual_price"`
	SetupFee     decimal.Decimal `gorm:"type:decimal(15,4);default:0" json:"setup_fee"`
	Active       bool            `gorm:"default:true" json:"active"`
	SortOrder    int             `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Group *ProductGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// PriceFor returns the unit price for a billing cycle. One-time items are
// billed at the setup fee.
func (p *Product) PriceFor(cycle enum.BillingCycle) decimal.Decimal {
	switch cycle {
	case enum.BillingCycleAnnually:
		return p.AnnualPrice
	case enum.BillingCycleOneTime:
		return p.SetupFee
	default:
		return p.MonthlyPrice
	}
}

// ProductGroup groups catalog products for storefront navigation
type ProductGroup struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:GroupID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product group
func (g *ProductGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductGroup model
func (ProductGroup) TableName() string {
	return "product_groups"
}
