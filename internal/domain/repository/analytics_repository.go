package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int
	Revenue      decimal.Decimal
}

// TopCustomerResult represents a customer's spending data
type TopCustomerResult struct {
	CustomerID   uuid.UUID
	CustomerName string
	TotalSpent   decimal.Decimal
	InvoiceCount int
}

// MonthlyRevenueResult represents paid invoice revenue for one month
type MonthlyRevenueResult struct {
	Month   time.Time
	Revenue decimal.Decimal
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// GetTopProducts returns top selling products by paid invoice revenue
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)

	// GetTopCustomers returns top customers by total paid amount
	GetTopCustomers(ctx context.Context, limit int) ([]TopCustomerResult, error)

	// GetMonthlyRevenue returns paid revenue per month for the last N months
	GetMonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenueResult, error)

	// GetTotalRevenue returns the sum of all paid invoices
	GetTotalRevenue(ctx context.Context) (decimal.Decimal, error)

	// GetOutstandingAmount returns the sum of all unpaid invoices
	GetOutstandingAmount(ctx context.Context) (decimal.Decimal, error)
}
