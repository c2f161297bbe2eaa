package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCouponServiceForTest(repo *fakeCouponRepo, now time.Time) *CouponService {
	svc := NewCouponService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func TestValidatePercentageCoupon(t *testing.T) {
	repo := newFakeCouponRepo()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newCouponServiceForTest(repo, now)

	require.NoError(t, repo.Create(context.Background(), &entity.Coupon{
		Code: "SAVE25", Type: enum.DiscountTypePercentage, Value: decimal.NewFromInt(25), Active: true,
	}))

	validated, err := svc.Validate(context.Background(), "SAVE25", decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, validated.DiscountAmount.Equal(decimal.NewFromInt(50)))
}

func TestValidateFixedCouponClampedToSubtotal(t *testing.T) {
	repo := newFakeCouponRepo()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newCouponServiceForTest(repo, now)

	require.NoError(t, repo.Create(context.Background(), &entity.Coupon{
		Code: "BIG", Type: enum.DiscountTypeFixed, Value: decimal.NewFromInt(500), Active: true,
	}))

	validated, err := svc.Validate(context.Background(), "BIG", decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.True(t, validated.DiscountAmount.Equal(decimal.NewFromInt(80)))
}

func TestValidateRejectsUnusableCoupons(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	two := 2

	cases := []struct {
		name   string
		coupon entity.Coupon
	}{
		{"inactive", entity.Coupon{Code: "X", Value: decimal.NewFromInt(10), Active: false}},
		{"expired", entity.Coupon{Code: "X", Value: decimal.NewFromInt(10), Active: true, ValidUntil: &past}},
		{"not yet valid", entity.Coupon{Code: "X", Value: decimal.NewFromInt(10), Active: true, ValidFrom: &future}},
		{"used up", entity.Coupon{Code: "X", Value: decimal.NewFromInt(10), Active: true, MaxRedemptions: &two, TimesUsed: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeCouponRepo()
			svc := newCouponServiceForTest(repo, now)
			coupon := tc.coupon
			require.NoError(t, repo.Create(context.Background(), &coupon))

			_, err := svc.Validate(context.Background(), "X", decimal.NewFromInt(100))
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
		})
	}
}

func TestValidateUnknownCode(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := newCouponServiceForTest(repo, time.Now())

	_, err := svc.Validate(context.Background(), "NOPE", decimal.NewFromInt(100))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestCreateCouponDuplicateCode(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := newCouponServiceForTest(repo, time.Now())

	_, err := svc.CreateCoupon(context.Background(), &CouponInput{
		Code: "WELCOME", Type: enum.DiscountTypeFixed, Value: decimal.NewFromInt(5), Active: true,
	})
	require.NoError(t, err)

	_, err = svc.CreateCoupon(context.Background(), &CouponInput{
		Code: "WELCOME", Type: enum.DiscountTypeFixed, Value: decimal.NewFromInt(5), Active: true,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
}

func TestRedeemIncrementsUsage(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := newCouponServiceForTest(repo, time.Now())

	coupon := &entity.Coupon{Code: "ONCE", Value: decimal.NewFromInt(5), Active: true}
	require.NoError(t, repo.Create(context.Background(), coupon))

	require.NoError(t, svc.Redeem(context.Background(), coupon.ID))
	require.NoError(t, svc.Redeem(context.Background(), coupon.ID))

	stored, _ := repo.GetByID(context.Background(), coupon.ID)
	assert.Equal(t, 2, stored.TimesUsed)
}
