package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a provisioned instance of a product owned by a customer,
// such as a hosting account for a given domain name
type Service struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	ProductID       *uuid.UUID         `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Label           string             `gorm:"size:255;not null" json:"label"`
	DomainName      *string            `gorm:"size:255" json:"domain_name,omitempty"`
	Status          enum.ServiceStatus `gorm:"default:0" json:"status"`
	BillingCycle    enum.BillingCycle  `gorm:"default:0" json:"billing_cycle"`
	RecurringAmount decimal.Decimal    `gorm:"type:decimal(15,4);default:0" json:"recurring_amount"`
	RegisteredAt    *time.Time         `json:"registered_at,omitempty"`
	NextDueAt       *time.Time         `json:"next_due_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Product  *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new service
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "services"
}
