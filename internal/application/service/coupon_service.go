package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/pkg/apperror"
	"github.com/hostify/hostify-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CouponService handles discount codes
type CouponService struct {
	couponRepo repository.CouponRepository
	now        func() time.Time
}

// NewCouponService creates a new coupon service
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		now:        time.Now,
	}
}

// CouponInput represents the input for creating or updating a coupon
type CouponInput struct {
	Code           string
	Description    *string
	Type           enum.DiscountType
	Value          decimal.Decimal
	ValidFrom      *time.Time
	ValidUntil     *time.Time
	MaxRedemptions *int
	Active         bool
}

// CreateCoupon creates a new coupon
func (s *CouponService) CreateCoupon(ctx context.Context, input *CouponInput) (*entity.Coupon, error) {
	if input.Code == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "code", Message: "code is required"},
		})
	}
	if input.Value.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "value", Message: "value must not be negative"},
		})
	}

	existing, err := s.couponRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A coupon with this code already exists")
	}

	coupon := &entity.Coupon{
		Code:           input.Code,
		Description:    input.Description,
		Type:           input.Type,
		Value:          input.Value,
		ValidFrom:      input.ValidFrom,
		ValidUntil:     input.ValidUntil,
		MaxRedemptions: input.MaxRedemptions,
		Active:         input.Active,
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// GetCoupon retrieves a coupon by ID
func (s *CouponService) GetCoupon(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, apperror.NewNotFoundError("Coupon")
	}
	return coupon, nil
}

// UpdateCoupon updates an existing coupon
func (s *CouponService) UpdateCoupon(ctx context.Context, id uuid.UUID, input *CouponInput) (*entity.Coupon, error) {
	coupon, err := s.GetCoupon(ctx, id)
	if err != nil {
		return nil, err
	}

	coupon.Description = input.Description
	coupon.Type = input.Type
	coupon.Value = input.Value
	coupon.ValidFrom = input.ValidFrom
	coupon.ValidUntil = input.ValidUntil
	coupon.MaxRedemptions = input.MaxRedemptions
	coupon.Active = input.Active

	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// DeleteCoupon deletes a coupon
func (s *CouponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return apperror.NewNotFoundError("Coupon")
	}
	return s.couponRepo.Delete(ctx, id)
}

// ListCouponsInput represents the input for listing coupons
type ListCouponsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Active     *bool
}

// ListCoupons lists coupons with filtering
func (s *CouponService) ListCoupons(ctx context.Context, input *ListCouponsInput) (*pagination.PaginatedResult[entity.Coupon], error) {
	params := &repository.CouponFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Active:     input.Active,
	}

	coupons, total, err := s.couponRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(coupons, pag), nil
}

// ValidatedCoupon is the result of a successful code validation
type ValidatedCoupon struct {
	Coupon         *entity.Coupon
	DiscountAmount decimal.Decimal
}

// Validate checks a code against its window, redemption limit and active flag
// and returns the discount it would apply to the given subtotal. This is the
// only path by which a coupon discount enters a cart or checkout.
func (s *CouponService) Validate(ctx context.Context, code string, subTotal decimal.Decimal) (*ValidatedCoupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, apperror.NewNotFoundError("Coupon")
	}
	if !coupon.IsRedeemable(s.now()) {
		return nil, apperror.NewBadRequestError("Coupon is not valid")
	}

	discount := decimal.Zero
	switch coupon.Type {
	case enum.DiscountTypePercentage:
		discount = subTotal.Mul(coupon.Value).Div(decimal.NewFromInt(100))
	case enum.DiscountTypeFixed:
		discount = coupon.Value
	}
	if discount.GreaterThan(subTotal) {
		discount = subTotal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return &ValidatedCoupon{Coupon: coupon, DiscountAmount: discount}, nil
}

// Redeem bumps the coupon's usage counter after a successful checkout
func (s *CouponService) Redeem(ctx context.Context, id uuid.UUID) error {
	return s.couponRepo.IncrementUsage(ctx, id)
}
