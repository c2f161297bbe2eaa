package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/pkg/pagination"
)

// CouponRepository defines the interface for coupon data operations
type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error)
	GetByCode(ctx context.Context, code string) (*entity.Coupon, error)
	Update(ctx context.Context, coupon *entity.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CouponFilterParams) ([]entity.Coupon, int64, error)
	// IncrementUsage bumps TimesUsed atomically at order submission
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}

// CouponFilterParams contains filtering parameters for coupon queries
type CouponFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Active     *bool
	SortBy     string
	SortOrder  string
}
