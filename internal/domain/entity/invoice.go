package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice source discriminators
const (
	InvoiceSourceProposal = "proposal"
	InvoiceSourceOrder    = "order"
	InvoiceSourceManual   = "manual"
)

// Invoice is a billing record derived from an accepted proposal or a
// completed order. The billed-to block and item list are snapshots taken
// at creation time; later edits to the source never flow back in.
type Invoice struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	ServiceID       *uuid.UUID         `gorm:"type:uuid;index" json:"service_id,omitempty"`
	Number          string             `gorm:"size:100;unique;not null" json:"number"`
	Source          string             `gorm:"size:50;default:'manual'" json:"source"`
	SourceID        *uuid.UUID         `gorm:"type:uuid" json:"source_id,omitempty"`
	BilledToName    string             `gorm:"size:255;not null" json:"billed_to_name"`
	BilledToEmail   string             `gorm:"size:255" json:"billed_to_email"`
	BilledToCompany *string            `gorm:"size:255" json:"billed_to_company,omitempty"`
	BilledToAddress *string            `gorm:"type:text" json:"billed_to_address,omitempty"`
	BilledToPhone   *string            `gorm:"size:50" json:"billed_to_phone,omitempty"`
	DiscountType    enum.DiscountType  `gorm:"default:0" json:"discount_type"`
	DiscountValue   decimal.Decimal    `gorm:"type:decimal(15,4);default:0" json:"discount_value"`
	TaxPercent      decimal.Decimal    `gorm:"type:decimal(5,2);default:0" json:"tax_percent"`
	SubTotal        decimal.Decimal    `gorm:"type:decimal(15,4);default:0" json:"sub_total"`
	DiscountAmount  decimal.Decimal    `gorm:"type:decimal(15,4);default:0" json:"discount_amount"`
	TaxAmount       decimal.Decimal    `gorm:"type:decimal(15,4);default:0" json:"tax_amount"`
	Total           decimal.Decimal    `gorm:"type:decimal(15,4);default:0" json:"total"`
	Status          enum.InvoiceStatus `gorm:"default:0" json:"status"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`
	IssueDate       time.Time          `gorm:"not null" json:"issue_date"`
	DueDate         time.Time          `gorm:"not null" json:"due_date"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Service  *Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one priced line within an invoice, copied (not referenced)
// from the source document at creation time
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID   *uuid.UUID      `gorm:"type:uuid" json:"product_id,omitempty"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"line_total"`
	SortOrder   int             `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
