package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/pricing"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/pkg/apperror"
	"github.com/hostify/hostify-api/pkg/pagination"
	"github.com/hostify/hostify-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// OrderService handles checkout and order history
type OrderService struct {
	orderRepo       repository.OrderRepository
	orderItemRepo   repository.OrderItemRepository
	cartRepo        repository.CartRepository
	customerRepo    repository.CustomerRepository
	userRepo        repository.UserRepository
	invoiceRepo     repository.InvoiceRepository
	invoiceItemRepo repository.InvoiceItemRepository
	billingRepo     repository.BillingSettingsRepository
	couponService   *CouponService
	provisioner     Provisioner
	now             func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	cartRepo repository.CartRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	invoiceRepo repository.InvoiceRepository,
	invoiceItemRepo repository.InvoiceItemRepository,
	billingRepo repository.BillingSettingsRepository,
	couponService *CouponService,
	provisioner Provisioner,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		orderItemRepo:   orderItemRepo,
		cartRepo:        cartRepo,
		customerRepo:    customerRepo,
		userRepo:        userRepo,
		invoiceRepo:     invoiceRepo,
		invoiceItemRepo: invoiceItemRepo,
		billingRepo:     billingRepo,
		couponService:   couponService,
		provisioner:     provisioner,
		now:             time.Now,
	}
}

// CheckoutInput represents the input for submitting the cart as an order
type CheckoutInput struct {
	UserID     uuid.UUID
	CouponCode string
	TaxPercent decimal.Decimal
}

// CheckoutResult carries the created order and its invoice
type CheckoutResult struct {
	Order   *entity.Order
	Invoice *entity.Invoice
}

// Checkout converts the user's cart into a pending order with an unpaid
// invoice. The cart is cleared only after both records are written; any
// failure leaves the cart intact.
func (s *OrderService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	cartItems, err := s.cartRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}
	for _, item := range cartItems {
		if item.Quantity <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "quantity", Message: "every line must have a quantity greater than zero"},
			})
		}
		if item.UnitPrice.IsNegative() {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "unit_price", Message: "every line must have a non-negative price"},
			})
		}
	}

	customer, err := s.resolveCustomer(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.LineItem, 0, len(cartItems))
	for _, item := range cartItems {
		lines = append(lines, pricing.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}

	discount := pricing.Discount{}
	var coupon *entity.Coupon
	if input.CouponCode != "" {
		subTotal := decimal.Zero
		for _, line := range lines {
			subTotal = subTotal.Add(pricing.LineTotal(line))
		}
		validated, err := s.couponService.Validate(ctx, input.CouponCode, subTotal)
		if err != nil {
			return nil, err
		}
		coupon = validated.Coupon
		discount = pricing.Discount{Type: coupon.Type, Value: coupon.Value}
	}

	taxPercent := input.TaxPercent
	if taxPercent.IsZero() {
		if billing, err := s.billingRepo.Get(ctx); err == nil && billing != nil {
			taxPercent = billing.DefaultTaxPercent
		}
	}

	totals := pricing.Calculate(lines, discount, taxPercent)

	nextOrderNum, err := s.orderRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:             uuid.New(),
		UserID:         input.UserID,
		CustomerID:     &customer.ID,
		Number:         utils.FormatSequenceNumber("ORD", nextOrderNum),
		Status:         enum.OrderStatusPending,
		DiscountType:   discount.Type,
		DiscountValue:  discount.Value,
		TaxPercent:     taxPercent,
		SubTotal:       totals.SubTotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
	}
	if coupon != nil {
		code := coupon.Code
		order.CouponCode = &code
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	orderItems := make([]entity.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		orderItems = append(orderItems, entity.OrderItem{
			OrderID:      order.ID,
			ProductID:    item.ProductID,
			ItemType:     item.ItemType,
			Name:         item.Name,
			BillingCycle: item.BillingCycle,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineTotal:    item.LineTotal(),
		})
	}
	if err := s.orderItemRepo.CreateBatch(ctx, orderItems); err != nil {
		return nil, err
	}

	invoice, err := s.createInvoiceFromOrder(ctx, order, orderItems, customer)
	if err != nil {
		return nil, err
	}

	order.InvoiceID = &invoice.ID
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	// Both records exist; the cart can now be dropped and the coupon counted
	if err := s.cartRepo.Clear(ctx, input.UserID); err != nil {
		return nil, err
	}
	if coupon != nil {
		if err := s.couponService.Redeem(ctx, coupon.ID); err != nil {
			return nil, err
		}
	}

	return &CheckoutResult{Order: order, Invoice: invoice}, nil
}

func (s *OrderService) resolveCustomer(ctx context.Context, userID uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	customer = &entity.Customer{
		UserID:  &user.ID,
		Name:    user.FullName(),
		Email:   user.Email,
		Company: user.Company,
		Phone:   user.Phone,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *OrderService) createInvoiceFromOrder(ctx context.Context, order *entity.Order, items []entity.OrderItem, customer *entity.Customer) (*entity.Invoice, error) {
	nextNum, err := s.invoiceRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	dueDays := 14
	if billing, err := s.billingRepo.Get(ctx); err == nil && billing != nil && billing.InvoiceDueDays > 0 {
		dueDays = billing.InvoiceDueDays
	}

	now := s.now()
	invoice := &entity.Invoice{
		ID:              uuid.New(),
		CustomerID:      order.CustomerID,
		Number:          utils.FormatSequenceNumber("INV", nextNum),
		Source:          entity.InvoiceSourceOrder,
		SourceID:        &order.ID,
		BilledToName:    customer.Name,
		BilledToEmail:   customer.Email,
		BilledToCompany: customer.Company,
		BilledToAddress: customer.Address,
		BilledToPhone:   customer.Phone,
		DiscountType:    order.DiscountType,
		DiscountValue:   order.DiscountValue,
		TaxPercent:      order.TaxPercent,
		SubTotal:        order.SubTotal,
		DiscountAmount:  order.DiscountAmount,
		TaxAmount:       order.TaxAmount,
		Total:           order.Total,
		Status:          enum.InvoiceStatusUnpaid,
		IssueDate:       now,
		DueDate:         now.AddDate(0, 0, dueDays),
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	invoiceItems := make([]entity.InvoiceItem, 0, len(items))
	for i, item := range items {
		invoiceItems = append(invoiceItems, entity.InvoiceItem{
			InvoiceID: invoice.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
			SortOrder: i,
		})
	}
	if err := s.invoiceItemRepo.CreateBatch(ctx, invoiceItems); err != nil {
		return nil, err
	}

	return invoice, nil
}

// GetOrder retrieves an order with its items and invoice
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrdersInput represents the input for listing orders
type ListOrdersInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	UserID     *uuid.UUID
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, input *ListOrdersInput) (*pagination.PaginatedResult[entity.Order], error) {
	params := &repository.OrderFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		UserID:     input.UserID,
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// CompleteOrder marks a pending order as completed and signals the
// provisioner for its product lines
func (s *OrderService) CompleteOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusPending {
		return nil, apperror.NewIneligibleError("Only pending orders can be completed")
	}

	order.Status = enum.OrderStatusCompleted
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.provisioner != nil && order.InvoiceID != nil {
		invoice, err := s.invoiceRepo.GetByID(ctx, *order.InvoiceID)
		if err == nil && invoice != nil {
			items, err := s.invoiceItemRepo.GetByInvoiceID(ctx, invoice.ID)
			if err == nil {
				if err := s.provisioner.ProvisionInvoice(ctx, invoice, items); err != nil {
					return nil, err
				}
			}
		}
	}

	return order, nil
}

// CancelOrder cancels a pending order
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status != enum.OrderStatusPending {
		return nil, apperror.NewIneligibleError("Only pending orders can be cancelled")
	}

	order.Status = enum.OrderStatusCancelled
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
