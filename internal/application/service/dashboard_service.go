package service

import (
	"context"

	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// DashboardService aggregates back office overview numbers
type DashboardService struct {
	customerRepo  repository.CustomerRepository
	serviceRepo   repository.ServiceRepository
	ticketRepo    repository.TicketRepository
	invoiceRepo   repository.InvoiceRepository
	proposalRepo  repository.ProposalRepository
	orderRepo     repository.OrderRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	ticketRepo repository.TicketRepository,
	invoiceRepo repository.InvoiceRepository,
	proposalRepo repository.ProposalRepository,
	orderRepo repository.OrderRepository,
	analyticsRepo repository.AnalyticsRepository,
) *DashboardService {
	return &DashboardService{
		customerRepo:  customerRepo,
		serviceRepo:   serviceRepo,
		ticketRepo:    ticketRepo,
		invoiceRepo:   invoiceRepo,
		proposalRepo:  proposalRepo,
		orderRepo:     orderRepo,
		analyticsRepo: analyticsRepo,
	}
}

// DashboardStats holds the headline counters shown on the admin overview
type DashboardStats struct {
	TotalCustomers    int64           `json:"total_customers"`
	ActiveServices    int64           `json:"active_services"`
	OpenTickets       int64           `json:"open_tickets"`
	UnpaidInvoices    int64           `json:"unpaid_invoices"`
	PendingProposals  int64           `json:"pending_proposals"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// GetStats collects the headline counters. Open tickets include those
// awaiting a staff response after a customer reply.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalCustomers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveServices, err = s.serviceRepo.CountByStatus(ctx, enum.ServiceStatusActive); err != nil {
		return nil, err
	}

	open, err := s.ticketRepo.CountByStatus(ctx, enum.TicketStatusOpen)
	if err != nil {
		return nil, err
	}
	awaiting, err := s.ticketRepo.CountByStatus(ctx, enum.TicketStatusCustomerReply)
	if err != nil {
		return nil, err
	}
	stats.OpenTickets = open + awaiting

	if stats.UnpaidInvoices, err = s.invoiceRepo.CountByStatus(ctx, enum.InvoiceStatusUnpaid); err != nil {
		return nil, err
	}
	if stats.PendingProposals, err = s.proposalRepo.CountByStatus(ctx, enum.ProposalStatusSent); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.analyticsRepo.GetTotalRevenue(ctx); err != nil {
		return nil, err
	}
	if stats.OutstandingAmount, err = s.analyticsRepo.GetOutstandingAmount(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetMonthlyRevenue returns paid revenue per month for the chart
func (s *DashboardService) GetMonthlyRevenue(ctx context.Context, months int) ([]repository.MonthlyRevenueResult, error) {
	if months <= 0 || months > 24 {
		months = 12
	}
	return s.analyticsRepo.GetMonthlyRevenue(ctx, months)
}

// GetTopProducts returns the best selling products by paid revenue
func (s *DashboardService) GetTopProducts(ctx context.Context, limit int) ([]repository.TopProductResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return s.analyticsRepo.GetTopProducts(ctx, limit)
}

// GetTopCustomers returns the highest spending customers
func (s *DashboardService) GetTopCustomers(ctx context.Context, limit int) ([]repository.TopCustomerResult, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	return s.analyticsRepo.GetTopCustomers(ctx, limit)
}

// RecentActivity holds the latest orders and tickets for the overview feed
type RecentActivity struct {
	Orders  []entity.Order  `json:"orders"`
	Tickets []entity.Ticket `json:"tickets"`
}

// GetRecentActivity returns the newest orders and tickets
func (s *DashboardService) GetRecentActivity(ctx context.Context, limit int) (*RecentActivity, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	params := &pagination.PaginationParams{Page: 1, PerPage: limit}

	orders, _, err := s.orderRepo.List(ctx, &repository.OrderFilterParams{
		Pagination: params,
		SortBy:     "created_at",
		SortOrder:  "DESC",
	})
	if err != nil {
		return nil, err
	}

	tickets, _, err := s.ticketRepo.List(ctx, &repository.TicketFilterParams{
		Pagination: params,
		SortBy:     "created_at",
		SortOrder:  "DESC",
	})
	if err != nil {
		return nil, err
	}

	return &RecentActivity{Orders: orders, Tickets: tickets}, nil
}
