package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByNumber(ctx context.Context, number string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetNextSequenceNumber(ctx context.Context) (int, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	UserID     *uuid.UUID
	SortBy     string
	SortOrder  string
}

// OrderItemRepository defines the interface for order item operations
type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
}

// CartRepository defines the interface for cart item operations
type CartRepository interface {
	Add(ctx context.Context, item *entity.CartItem) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error)
	GetByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartItem, error)
	Update(ctx context.Context, item *entity.CartItem) error
	Remove(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
