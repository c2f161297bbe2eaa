package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	domainRepo "github.com/hostify/hostify-api/internal/domain/repository"
	"gorm.io/gorm"
)

type proposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *gorm.DB) domainRepo.ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *entity.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *proposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var proposal entity.Proposal
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&proposal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proposal, err
}

func (r *proposalRepository) GetByNumber(ctx context.Context, number string) (*entity.Proposal, error) {
	var proposal entity.Proposal
	err := r.db.WithContext(ctx).First(&proposal, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proposal, err
}

func (r *proposalRepository) GetByPublicToken(ctx context.Context, token string) (*entity.Proposal, error) {
	var proposal entity.Proposal
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("proposal_items.sort_order ASC")
		}).
		First(&proposal, "public_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proposal, err
}

func (r *proposalRepository) Update(ctx context.Context, proposal *entity.Proposal) error {
	return r.db.WithContext(ctx).Save(proposal).Error
}

func (r *proposalRepository) UpdateVersioned(ctx context.Context, proposal *entity.Proposal, expectedVersion int) (bool, error) {
	proposal.Version = expectedVersion + 1
	result := r.db.WithContext(ctx).Model(&entity.Proposal{}).
		Where("id = ? AND version = ?", proposal.ID, expectedVersion).
		Select("status", "version", "reject_reason", "sent_at", "viewed_at", "responded_at").
		Updates(proposal)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *proposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Proposal{}, "id = ?", id).Error
}

func (r *proposalRepository) List(ctx context.Context, params *domainRepo.ProposalFilterParams) ([]entity.Proposal, int64, error) {
	var proposals []entity.Proposal
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Proposal{})

	if params.Search != "" {
		query = query.Where("number ILIKE ? OR title ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order(sortBy + " " + sortOrder).
		Find(&proposals).Error

	return proposals, total, err
}

func (r *proposalRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var proposal entity.Proposal
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("proposal_items.sort_order ASC")
		}).
		First(&proposal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proposal, err
}

func (r *proposalRepository) GetNextSequenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Proposal{}).Count(&count).Error
	return int(count) + 1, err
}

func (r *proposalRepository) CountByStatus(ctx context.Context, status enum.ProposalStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Proposal{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

type proposalItemRepository struct {
	db *gorm.DB
}

// NewProposalItemRepository creates a new proposal item repository
func NewProposalItemRepository(db *gorm.DB) domainRepo.ProposalItemRepository {
	return &proposalItemRepository{db: db}
}

func (r *proposalItemRepository) CreateBatch(ctx context.Context, items []entity.ProposalItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *proposalItemRepository) GetByProposalID(ctx context.Context, proposalID uuid.UUID) ([]entity.ProposalItem, error) {
	var items []entity.ProposalItem
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("sort_order ASC").
		Find(&items).Error
	return items, err
}

func (r *proposalItemRepository) DeleteByProposalID(ctx context.Context, proposalID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Delete(&entity.ProposalItem{}).Error
}
