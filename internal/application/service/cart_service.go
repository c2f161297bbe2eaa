package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/pricing"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// CartService handles per-user pre-checkout carts
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new cart service
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItemInput represents the input for adding a cart line
type AddItemInput struct {
	UserID       uuid.UUID
	ProductID    *uuid.UUID
	CustomName   string
	CustomPrice  decimal.Decimal
	BillingCycle enum.BillingCycle
	Quantity     int
}

// AddItem adds a product or custom line to the user's cart. Adding a product
// that is already in the cart increments its quantity.
func (s *CartService) AddItem(ctx context.Context, input *AddItemInput) (*entity.CartItem, error) {
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	if input.ProductID != nil {
		product, err := s.productRepo.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, apperror.NewNotFoundError("Product")
		}

		existing, err := s.cartRepo.GetByUserAndProduct(ctx, input.UserID, product.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			existing.Quantity += input.Quantity
			if err := s.cartRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}

		item := &entity.CartItem{
			UserID:       input.UserID,
			ProductID:    &product.ID,
			ItemType:     enum.CartItemTypeProduct,
			Name:         product.Name,
			BillingCycle: input.BillingCycle,
			Quantity:     input.Quantity,
			UnitPrice:    product.PriceFor(input.BillingCycle),
		}
		if err := s.cartRepo.Add(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	if input.CustomName == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "custom line needs a name"},
		})
	}
	if input.CustomPrice.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "unit_price", Message: "price must not be negative"},
		})
	}

	item := &entity.CartItem{
		UserID:       input.UserID,
		ItemType:     enum.CartItemTypeCustom,
		Name:         input.CustomName,
		BillingCycle: input.BillingCycle,
		Quantity:     input.Quantity,
		UnitPrice:    input.CustomPrice,
	}
	if err := s.cartRepo.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity changes the quantity of a cart line
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.CartItem, error) {
	if quantity <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "quantity must be greater than zero"},
		})
	}

	items, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == itemID {
			items[i].Quantity = quantity
			if err := s.cartRepo.Update(ctx, &items[i]); err != nil {
				return nil, err
			}
			return &items[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Cart item")
}

// RemoveItem removes one line from the user's cart
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.cartRepo.Remove(ctx, itemID, userID)
}

// ClearCart empties the user's cart
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return s.cartRepo.Clear(ctx, userID)
}

// Cart is the cart contents plus computed totals
type Cart struct {
	Items  []entity.CartItem
	Totals pricing.Totals
}

// GetCart returns the user's cart with its subtotal
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	items, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}

	return &Cart{
		Items:  items,
		Totals: pricing.Calculate(lines, pricing.Discount{}, decimal.Zero),
	}, nil
}
