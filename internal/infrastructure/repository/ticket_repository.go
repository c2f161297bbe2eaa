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

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) domainRepo.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).First(&ticket, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *ticketRepository) List(ctx context.Context, params *domainRepo.TicketFilterParams) ([]entity.Ticket, int64, error) {
	var tickets []entity.Ticket
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Ticket{})

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.Search != "" {
		query = query.Where("number ILIKE ? OR subject ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Priority != nil {
		query = query.Where("priority = ?", *params.Priority)
	}

	if params.Department != "" {
		query = query.Where("department = ?", params.Department)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "updated_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("User").
		Order(sortBy + " " + sortOrder).
		Find(&tickets).Error

	return tickets, total, err
}

func (r *ticketRepository) GetWithReplies(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("ticket_replies.created_at ASC")
		}).
		Preload("Replies.User").
		First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetNextSequenceNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Ticket{}).Count(&count).Error
	return int(count) + 1, err
}

func (r *ticketRepository) CountByStatus(ctx context.Context, status enum.TicketStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Ticket{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

type ticketReplyRepository struct {
	db *gorm.DB
}

// NewTicketReplyRepository creates a new ticket reply repository
func NewTicketReplyRepository(db *gorm.DB) domainRepo.TicketReplyRepository {
	return &ticketReplyRepository{db: db}
}

func (r *ticketReplyRepository) Create(ctx context.Context, reply *entity.TicketReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *ticketReplyRepository) GetByTicketID(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketReply, error) {
	var replies []entity.TicketReply
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Preload("User").
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}
