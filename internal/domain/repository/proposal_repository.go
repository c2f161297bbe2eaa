package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/pkg/pagination"
)

// ProposalRepository defines the interface for proposal data operations
type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	GetByNumber(ctx context.Context, number string) (*entity.Proposal, error)
	GetByPublicToken(ctx context.Context, token string) (*entity.Proposal, error)
	Update(ctx context.Context, proposal *entity.Proposal) error
	// UpdateVersioned writes the proposal only if the stored Version still
	// matches expectedVersion, then bumps Version. Returns false when
	// another writer got there first.
	UpdateVersioned(ctx context.Context, proposal *entity.Proposal, expectedVersion int) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProposalFilterParams) ([]entity.Proposal, int64, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	GetNextSequenceNumber(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status enum.ProposalStatus) (int64, error)
}

// ProposalFilterParams contains filtering parameters for proposal queries
type ProposalFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ProposalStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ProposalItemRepository defines the interface for proposal item operations
type ProposalItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.ProposalItem) error
	GetByProposalID(ctx context.Context, proposalID uuid.UUID) ([]entity.ProposalItem, error)
	DeleteByProposalID(ctx context.Context, proposalID uuid.UUID) error
}
