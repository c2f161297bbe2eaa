package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/pkg/pagination"
)

// TicketRepository defines the interface for support ticket operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*entity.Ticket, error)
	Update(ctx context.Context, ticket *entity.Ticket) error
	List(ctx context.Context, params *TicketFilterParams) ([]entity.Ticket, int64, error)
	GetWithReplies(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	GetNextSequenceNumber(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status enum.TicketStatus) (int64, error)
}

// TicketFilterParams contains filtering parameters for ticket queries
type TicketFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.TicketStatus
	Priority   *enum.TicketPriority
	UserID     *uuid.UUID
	Department string
	SortBy     string
	SortOrder  string
}

// TicketReplyRepository defines the interface for ticket reply operations
type TicketReplyRepository interface {
	Create(ctx context.Context, reply *entity.TicketReply) error
	GetByTicketID(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketReply, error)
}
