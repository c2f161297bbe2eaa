package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Proposal is an offer document sent to a prospective or existing customer.
// Its stored status only ever moves forward (draft, sent, viewed, accepted,
// rejected); expiry is derived from ValidUntil at read time and is never
// written back as a status.
type Proposal struct {
	ID             uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID             `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID     *uuid.UUID            `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Number         string                `gorm:"size:100;unique;not null" json:"number"`
	Title          string                `gorm:"size:255;not null" json:"title"`
	Description    *string               `gorm:"type:text" json:"description,omitempty"`
	CustomerName   string                `gorm:"size:255" json:"customer_name"`
	CustomerEmail  string                `gorm:"size:255" json:"customer_email"`
	DiscountType   enum.DiscountType     `gorm:"default:0" json:"discount_type"`
	DiscountValue  decimal.Decimal       `gorm:"type:decimal(15,4);default:0" json:"discount_value"`
	TaxPercent     decimal.Decimal       `gorm:"type:decimal(5,2);default:0" json:"tax_percent"`
	SubTotal       decimal.Decimal       `gorm:"type:decimal(15,4);default:0" json:"sub_total"`
	DiscountAmount decimal.Decimal       `gorm:"type:decimal(15,4);default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal       `gorm:"type:decimal(15,4);default:0" json:"tax_amount"`
	Total          decimal.Decimal       `gorm:"type:decimal(15,4);default:0" json:"total"`
	Notes          *string               `gorm:"type:text" json:"notes,omitempty"`
	Terms          *string               `gorm:"type:text" json:"terms,omitempty"`
	ValidUntil     time.Time             `gorm:"not null" json:"valid_until"`
	Template       enum.ProposalTemplate `gorm:"default:0" json:"template"`
	Status         enum.ProposalStatus   `gorm:"default:0" json:"status"`
	PublicToken    string                `gorm:"size:100;uniqueIndex;not null" json:"-"`
	RejectReason   *string               `gorm:"type:text" json:"reject_reason,omitempty"`
	Version        int                   `gorm:"default:1" json:"version"`
	SentAt         *time.Time            `json:"sent_at,omitempty"`
	ViewedAt       *time.Time            `json:"viewed_at,omitempty"`
	RespondedAt    *time.Time            `json:"responded_at,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	DeletedAt      gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	User     User           `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []ProposalItem `gorm:"foreignKey:ProposalID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new proposal
func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Proposal model
func (Proposal) TableName() string {
	return "proposals"
}

// IsExpired reports whether the proposal has passed its valid-until date
func (p *Proposal) IsExpired(now time.Time) bool {
	return now.After(p.ValidUntil)
}

// CanRespond reports whether the recipient may still accept or reject:
// the stored status must be open and the proposal must not be expired
func (p *Proposal) CanRespond(now time.Time) bool {
	return p.Status.IsOpenForResponse() && !p.IsExpired(now)
}

// ProposalItem is one priced line within a proposal. It has no identity
// outside its parent; editing a draft replaces the whole item list.
type ProposalItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ProposalID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"proposal_id"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(15,4);not null" json:"line_total"`
	SortOrder   int             `gorm:"default:0" json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Proposal Proposal `gorm:"foreignKey:ProposalID" json:"-"`
	Product  *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new proposal item
func (pi *ProposalItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProposalItem model
func (ProposalItem) TableName() string {
	return "proposal_items"
}
