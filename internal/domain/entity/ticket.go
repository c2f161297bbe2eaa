package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Ticket is a support conversation between a customer and staff. Status
// flips between answered and customer-reply as each side responds; a
// closed ticket is reopened by a customer reply.
type Ticket struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	ServiceID  *uuid.UUID          `gorm:"type:uuid;index" json:"service_id,omitempty"`
	Number     string              `gorm:"size:100;unique;not null" json:"number"`
	Subject    string              `gorm:"size:255;not null" json:"subject"`
	Department string              `gorm:"size:100;default:'support'" json:"department"`
	Status     enum.TicketStatus   `gorm:"default:0" json:"status"`
	Priority   enum.TicketPriority `gorm:"default:1" json:"priority"`
	LastReplyAt *time.Time         `json:"last_reply_at,omitempty"`
	ClosedAt   *time.Time          `json:"closed_at,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	DeletedAt  gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	User    User          `gorm:"foreignKey:UserID" json:"-"`
	Service *Service      `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Replies []TicketReply `gorm:"foreignKey:TicketID" json:"replies,omitempty"`
}

// BeforeCreate generates a UUID before creating a new ticket
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Ticket model
func (Ticket) TableName() string {
	return "tickets"
}

// TicketReply is one message within a ticket thread
type TicketReply struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TicketID  uuid.UUID `gorm:"type:uuid;not null;index" json:"ticket_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	IsStaff   bool      `gorm:"default:false" json:"is_staff"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Ticket Ticket `gorm:"foreignKey:TicketID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate generates a UUID before creating a new ticket reply
func (tr *TicketReply) BeforeCreate(tx *gorm.DB) error {
	if tr.ID == uuid.Nil {
		tr.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TicketReply model
func (TicketReply) TableName() string {
	return "ticket_replies"
}
