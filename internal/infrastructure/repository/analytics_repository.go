package repository

import (
	"context"

	"github.com/hostify/hostify-api/internal/domain/enum"
	domainRepo "github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult
	err := r.db.WithContext(ctx).
		Table("invoice_items").
		Select(`invoice_items.product_id,
			MAX(invoice_items.name) AS product_name,
			SUM(invoice_items.quantity) AS quantity_sold,
			SUM(invoice_items.line_total) AS revenue`).
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Where("invoices.status = ? AND invoices.deleted_at IS NULL", enum.InvoiceStatusPaid).
		Where("invoice_items.product_id IS NOT NULL").
		Group("invoice_items.product_id").
		Order("revenue DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetTopCustomers(ctx context.Context, limit int) ([]domainRepo.TopCustomerResult, error) {
	var results []domainRepo.TopCustomerResult
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select(`invoices.customer_id,
			MAX(invoices.billed_to_name) AS customer_name,
			SUM(invoices.total) AS total_spent,
			COUNT(*) AS invoice_count`).
		Where("invoices.status = ? AND invoices.deleted_at IS NULL", enum.InvoiceStatusPaid).
		Where("invoices.customer_id IS NOT NULL").
		Group("invoices.customer_id").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetMonthlyRevenue(ctx context.Context, months int) ([]domainRepo.MonthlyRevenueResult, error) {
	var results []domainRepo.MonthlyRevenueResult
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select(`DATE_TRUNC('month', paid_at) AS month, SUM(total) AS revenue`).
		Where("status = ? AND deleted_at IS NULL", enum.InvoiceStatusPaid).
		Where("paid_at >= DATE_TRUNC('month', NOW()) - (? || ' months')::interval", months-1).
		Group("DATE_TRUNC('month', paid_at)").
		Order("month ASC").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) GetTotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select("COALESCE(SUM(total), 0) AS total").
		Where("status = ? AND deleted_at IS NULL", enum.InvoiceStatusPaid).
		Scan(&result).Error
	return result.Total, err
}

func (r *analyticsRepository) GetOutstandingAmount(ctx context.Context) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select("COALESCE(SUM(total), 0) AS total").
		Where("status = ? AND deleted_at IS NULL", enum.InvoiceStatusUnpaid).
		Scan(&result).Error
	return result.Total, err
}
