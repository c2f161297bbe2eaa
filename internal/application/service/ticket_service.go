package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/pkg/apperror"
	"github.com/hostify/hostify-api/pkg/pagination"
	"github.com/hostify/hostify-api/pkg/utils"
)

// TicketMailer sends support ticket notifications
type TicketMailer interface {
	SendTicketReplyEmail(toEmail, recipientName, ticketNumber, subjectLine string) error
}

// TicketService handles support tickets
type TicketService struct {
	ticketRepo  repository.TicketRepository
	replyRepo   repository.TicketReplyRepository
	userRepo    repository.UserRepository
	serviceRepo repository.ServiceRepository
	mailer      TicketMailer
	now         func() time.Time
}

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo repository.TicketRepository,
	replyRepo repository.TicketReplyRepository,
	userRepo repository.UserRepository,
	serviceRepo repository.ServiceRepository,
	mailer TicketMailer,
) *TicketService {
	return &TicketService{
		ticketRepo:  ticketRepo,
		replyRepo:   replyRepo,
		userRepo:    userRepo,
		serviceRepo: serviceRepo,
		mailer:      mailer,
		now:         time.Now,
	}
}

// OpenTicketInput represents the input for opening a support ticket
type OpenTicketInput struct {
	UserID     uuid.UUID
	ServiceID  *uuid.UUID
	Subject    string
	Department string
	Priority   enum.TicketPriority
	Message    string
}

// OpenTicket opens a new ticket with its first message
func (s *TicketService) OpenTicket(ctx context.Context, input *OpenTicketInput) (*entity.Ticket, error) {
	var fieldErrors []apperror.FieldError
	if input.Subject == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "subject", Message: "subject is required"})
	}
	if input.Message == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "message", Message: "message is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.ServiceID != nil {
		svc, err := s.serviceRepo.GetByID(ctx, *input.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, apperror.NewNotFoundError("Service")
		}
	}

	nextNum, err := s.ticketRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	department := input.Department
	if department == "" {
		department = "support"
	}

	ticket := &entity.Ticket{
		UserID:     input.UserID,
		ServiceID:  input.ServiceID,
		Number:     utils.FormatSequenceNumber("TKT", nextNum),
		Subject:    input.Subject,
		Department: department,
		Status:     enum.TicketStatusOpen,
		Priority:   input.Priority,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	reply := &entity.TicketReply{
		TicketID: ticket.ID,
		UserID:   input.UserID,
		IsStaff:  false,
		Message:  input.Message,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	return ticket, nil
}

// GetTicket retrieves a ticket with its reply thread
func (s *TicketService) GetTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetWithReplies(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	return ticket, nil
}

// GetOwnTicket retrieves a ticket only if it belongs to the given user
func (s *TicketService) GetOwnTicket(ctx context.Context, id, userID uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	return ticket, nil
}

// ReplyInput represents the input for replying to a ticket
type ReplyInput struct {
	TicketID uuid.UUID
	UserID   uuid.UUID
	IsStaff  bool
	Message  string
}

// Reply appends a message to a ticket thread. A staff reply marks the ticket
// answered and notifies the customer; a customer reply marks it
// customer-reply, reopening a closed ticket.
func (s *TicketService) Reply(ctx context.Context, input *ReplyInput) (*entity.TicketReply, error) {
	if input.Message == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "message", Message: "message is required"},
		})
	}

	ticket, err := s.ticketRepo.GetByID(ctx, input.TicketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	if !input.IsStaff && ticket.UserID != input.UserID {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	if input.IsStaff && ticket.Status == enum.TicketStatusClosed {
		return nil, apperror.NewIneligibleError("Ticket is closed")
	}

	reply := &entity.TicketReply{
		TicketID: ticket.ID,
		UserID:   input.UserID,
		IsStaff:  input.IsStaff,
		Message:  input.Message,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	now := s.now()
	ticket.LastReplyAt = &now
	if input.IsStaff {
		ticket.Status = enum.TicketStatusAnswered
	} else {
		ticket.Status = enum.TicketStatusCustomerReply
		ticket.ClosedAt = nil
	}
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	if input.IsStaff {
		s.notifyCustomer(ctx, ticket)
	}

	return reply, nil
}

func (s *TicketService) notifyCustomer(ctx context.Context, ticket *entity.Ticket) {
	owner, err := s.userRepo.GetByID(ctx, ticket.UserID)
	if err != nil || owner == nil {
		log.Printf("ticket %s: could not load owner for notification: %v", ticket.Number, err)
		return
	}
	if err := s.mailer.SendTicketReplyEmail(owner.Email, owner.FullName(), ticket.Number, ticket.Subject); err != nil {
		log.Printf("ticket %s: reply notification failed: %v", ticket.Number, err)
	}
}

// CloseTicket closes a ticket. Already-closed tickets are left unchanged.
func (s *TicketService) CloseTicket(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	if ticket.Status == enum.TicketStatusClosed {
		return ticket, nil
	}

	now := s.now()
	ticket.Status = enum.TicketStatusClosed
	ticket.ClosedAt = &now
	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// CloseOwnTicket closes a ticket on behalf of its owner
func (s *TicketService) CloseOwnTicket(ctx context.Context, id, userID uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil || ticket.UserID != userID {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	return s.CloseTicket(ctx, id)
}

// ListTicketsInput represents the input for listing tickets
type ListTicketsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.TicketStatus
	Priority   *enum.TicketPriority
	UserID     *uuid.UUID
	Department string
	SortBy     string
	SortOrder  string
}

// ListTickets lists tickets with filtering. Customer-facing callers pass
// their own UserID; admin callers leave it nil to see everything.
func (s *TicketService) ListTickets(ctx context.Context, input *ListTicketsInput) (*pagination.PaginatedResult[entity.Ticket], error) {
	params := &repository.TicketFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		Priority:   input.Priority,
		UserID:     input.UserID,
		Department: input.Department,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	tickets, total, err := s.ticketRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(tickets, pag), nil
}
