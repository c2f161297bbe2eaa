package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListActive(ctx context.Context, groupID *uuid.UUID) ([]entity.Product, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	GroupID    *uuid.UUID
	Active     *bool
	SortBy     string
	SortOrder  string
}

// ProductGroupRepository defines the interface for product group operations
type ProductGroupRepository interface {
	Create(ctx context.Context, group *entity.ProductGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductGroup, error)
	GetBySlug(ctx context.Context, slug string) (*entity.ProductGroup, error)
	Update(ctx context.Context, group *entity.ProductGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.ProductGroup, error)
}
