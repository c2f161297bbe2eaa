package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	orders      *OrderService
	cart        *CartService
	coupons     *CouponService
	cartRepo    *fakeCartRepo
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
	invoiceRepo *fakeInvoiceRepo
	couponRepo  *fakeCouponRepo
	userRepo    *fakeUserRepo
	provisioner *fakeProvisioner
	now         time.Time
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		cartRepo:    newFakeCartRepo(),
		productRepo: newFakeProductRepo(),
		orderRepo:   newFakeOrderRepo(),
		invoiceRepo: newFakeInvoiceRepo(),
		couponRepo:  newFakeCouponRepo(),
		userRepo:    newFakeUserRepo(),
		provisioner: &fakeProvisioner{},
		now:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.cart = NewCartService(f.cartRepo, f.productRepo)
	f.coupons = NewCouponService(f.couponRepo)
	f.coupons.now = func() time.Time { return f.now }
	f.orders = NewOrderService(
		f.orderRepo, newFakeOrderItemRepo(), f.cartRepo,
		newFakeCustomerRepo(), f.userRepo,
		f.invoiceRepo, newFakeInvoiceItemRepo(), &fakeBillingRepo{},
		f.coupons, f.provisioner,
	)
	f.orders.now = func() time.Time { return f.now }
	return f
}

func (f *checkoutFixture) seedUser(t *testing.T) *entity.User {
	t.Helper()
	user := &entity.User{FirstName: "Dana", LastName: "Reed", Email: "dana@example.test"}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func (f *checkoutFixture) seedProduct(t *testing.T, monthly string) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:         "Starter Hosting",
		Slug:         "starter-hosting",
		MonthlyPrice: decimal.RequireFromString(monthly),
		AnnualPrice:  decimal.RequireFromString(monthly).Mul(decimal.NewFromInt(10)),
		Active:       true,
	}
	require.NoError(t, f.productRepo.Create(context.Background(), product))
	return product
}

func TestAddSameProductTwiceMergesQuantity(t *testing.T) {
	f := newCheckoutFixture(t)
	user := f.seedUser(t)
	product := f.seedProduct(t, "9.99")

	first, err := f.cart.AddItem(context.Background(), &AddItemInput{
		UserID: user.ID, ProductID: &product.ID, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Quantity)

	second, err := f.cart.AddItem(context.Background(), &AddItemInput{
		UserID: user.ID, ProductID: &product.ID, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Quantity)

	cart, err := f.cart.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Totals.SubTotal.Equal(decimal.RequireFromString("19.98")))
}

func TestAddInactiveProductRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	user := f.seedUser(t)
	product := f.seedProduct(t, "9.99")
	product.Active = false
	require.NoError(t, f.productRepo.Update(context.Background(), product))

	_, err := f.cart.AddItem(context.Background(), &AddItemInput{
		UserID: user.ID, ProductID: &product.ID, Quantity: 1,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}

func TestCheckoutCreatesOrderAndInvoiceThenClearsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	user := f.seedUser(t)
	product := f.seedProduct(t, "10.00")

	_, err := f.cart.AddItem(context.Background(), &AddItemInput{
		UserID: user.ID, ProductID: &product.ID, Quantity: 2,
	})
	require.NoError(t, err)

	result, err := f.orders.Checkout(context.Background(), &CheckoutInput{UserID: user.ID})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusPending, result.Order.Status)
	assert.Equal(t, "ORD-000001", result.Order.Number)
	require.NotNil(t, result.Order.InvoiceID)
	assert.Equal(t, *result.Order.InvoiceID, result.Invoice.ID)
	assert.Equal(t, entity.InvoiceSourceOrder, result.Invoice.Source)
	assert.Equal(t, enum.InvoiceStatusUnpaid, result.Invoice.Status)
	assert.True(t, result.Invoice.Total.Equal(decimal.RequireFromString("20")))
	// Customer record is created from the user on first checkout
	assert.Equal(t, "Dana Reed", result.Invoice.BilledToName)

	items, err := f.cartRepo.GetByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "cart should be cleared after checkout")
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	user := f.seedUser(t)

	_, err := f.orders.Checkout(context.Background(), &CheckoutInput{UserID: user.ID})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}

func TestCheckoutZeroQuantityLineBlocks(t *testing.T) {
	f := newCheckoutFixture(t)
	user := f.seedUser(t)

	// Planted directly; AddItem would have normalized the quantity
	require.NoError(t, f.cartRepo.Add(context.Background(), &entity.CartItem{
		UserID: user.ID, Name: "Broken line", Quantity: 0, UnitPrice: decimal.NewFromInt(10),
	}))

	_, err := f.orders.Checkout(context.Background(), &CheckoutInput{UserID: user.ID})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(t, err))

	items, _ := f.cartRepo.GetByUserID(context.Background(), user.ID)
	assert.Len(t, items, 1, "failed checkout must leave the cart intact")
}

func TestCheckoutFailureRetainsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	user := f.seedUser(t)
	product := f.seedProduct(t, "10.00")

	_, err := f.cart.AddItem(context.Background(), &AddItemInput{
		UserID: user.ID, ProductID: &product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	// An unknown coupon aborts checkout before any order is written
	_, err = f.orders.Checkout(context.Background(), &CheckoutInput{
		UserID: user.ID, CouponCode: "NO-SUCH-CODE",
	})
	require.Error(t, err)

	items, _ := f.cartRepo.GetByUserID(context.Background(), user.ID)
	assert.Len(t, items, 1)

	orders, total, _ := f.orderRepo.List(context.Background(), nil)
	assert.Empty(t, orders)
	assert.Zero(t, total)
}

func TestCheckoutAppliesCouponAndCountsRedemption(t *testing.T) {
	f := newCheckoutFixture(t)
	user := f.seedUser(t)
	product := f.seedProduct(t, "100.00")

	coupon := &entity.Coupon{
		Code:   "SAVE10",
		Type:   enum.DiscountTypePercentage,
		Value:  decimal.NewFromInt(10),
		Active: true,
	}
	require.NoError(t, f.couponRepo.Create(context.Background(), coupon))

	_, err := f.cart.AddItem(context.Background(), &AddItemInput{
		UserID: user.ID, ProductID: &product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	result, err := f.orders.Checkout(context.Background(), &CheckoutInput{
		UserID: user.ID, CouponCode: "SAVE10",
	})
	require.NoError(t, err)

	require.NotNil(t, result.Order.CouponCode)
	assert.Equal(t, "SAVE10", *result.Order.CouponCode)
	assert.True(t, result.Order.DiscountAmount.Equal(decimal.NewFromInt(10)))
	assert.True(t, result.Order.Total.Equal(decimal.NewFromInt(90)))

	stored, _ := f.couponRepo.GetByID(context.Background(), coupon.ID)
	assert.Equal(t, 1, stored.TimesUsed)
}

func TestCompleteOrderProvisionsInvoiceLines(t *testing.T) {
	f := newCheckoutFixture(t)
	user := f.seedUser(t)
	product := f.seedProduct(t, "10.00")

	_, err := f.cart.AddItem(context.Background(), &AddItemInput{
		UserID: user.ID, ProductID: &product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	result, err := f.orders.Checkout(context.Background(), &CheckoutInput{UserID: user.ID})
	require.NoError(t, err)

	completed, err := f.orders.CompleteOrder(context.Background(), result.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, completed.Status)
	assert.Equal(t, 1, f.provisioner.calls)

	// A completed order cannot be completed or cancelled again
	_, err = f.orders.CompleteOrder(context.Background(), result.Order.ID)
	require.Error(t, err)
	_, err = f.orders.CancelOrder(context.Background(), result.Order.ID)
	require.Error(t, err)
}

func TestUpdateQuantityRejectsZero(t *testing.T) {
	f := newCheckoutFixture(t)
	user := f.seedUser(t)
	product := f.seedProduct(t, "10.00")

	item, err := f.cart.AddItem(context.Background(), &AddItemInput{
		UserID: user.ID, ProductID: &product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = f.cart.UpdateQuantity(context.Background(), user.ID, item.ID, 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(t, err))

	updated, err := f.cart.UpdateQuantity(context.Background(), user.ID, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
}

func TestUpdateQuantityScopedToOwner(t *testing.T) {
	f := newCheckoutFixture(t)
	owner := f.seedUser(t)
	product := f.seedProduct(t, "10.00")

	item, err := f.cart.AddItem(context.Background(), &AddItemInput{
		UserID: owner.ID, ProductID: &product.ID, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = f.cart.UpdateQuantity(context.Background(), uuid.New(), item.ID, 5)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrorCode(t, err))
}
