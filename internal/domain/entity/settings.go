package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmailSettings is the single row of runtime SMTP configuration editable
// from the back office. Values here take precedence over the config file.
type EmailSettings struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SMTPHost     string    `gorm:"size:255" json:"smtp_host"`
	SMTPPort     int       `gorm:"default:587" json:"smtp_port"`
	SMTPUser     string    `gorm:"size:255" json:"smtp_user"`
	SMTPPassword string    `gorm:"size:255" json:"-"`
	FromName     string    `gorm:"size:255" json:"from_name"`
	FromAddress  string    `gorm:"size:255" json:"from_address"`
	Enabled      bool      `gorm:"default:false" json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating email settings
func (es *EmailSettings) BeforeCreate(tx *gorm.DB) error {
	if es.ID == uuid.Nil {
		es.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EmailSettings model
func (EmailSettings) TableName() string {
	return "email_settings"
}

// BillingSettings is the single row of company billing defaults applied
// to new proposals and invoices
type BillingSettings struct {
	ID                uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	CompanyName       string                `gorm:"size:255" json:"company_name"`
	CompanyAddress    *string               `gorm:"type:text" json:"company_address,omitempty"`
	CompanyEmail      string                `gorm:"size:255" json:"company_email"`
	CompanyPhone      *string               `gorm:"size:50" json:"company_phone,omitempty"`
	TaxID             *string               `gorm:"size:100" json:"tax_id,omitempty"`
	CurrencyCode      string                `gorm:"size:10;default:'USD'" json:"currency_code"`
	DefaultTaxPercent decimal.Decimal       `gorm:"type:decimal(5,2);default:0" json:"default_tax_percent"`
	InvoiceDueDays    int                   `gorm:"default:14" json:"invoice_due_days"`
	ProposalValidDays int                   `gorm:"default:30" json:"proposal_valid_days"`
	DefaultTemplate   enum.ProposalTemplate `gorm:"default:0" json:"default_template"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating billing settings
func (bs *BillingSettings) BeforeCreate(tx *gorm.DB) error {
	if bs.ID == uuid.Nil {
		bs.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillingSettings model
func (BillingSettings) TableName() string {
	return "billing_settings"
}
