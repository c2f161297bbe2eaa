package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/pkg/pagination"
)

// ServiceRepository defines the interface for provisioned service operations
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ServiceFilterParams) ([]entity.Service, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Service, error)
	CountByStatus(ctx context.Context, status enum.ServiceStatus) (int64, error)
}

// ServiceFilterParams contains filtering parameters for service queries
type ServiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ServiceStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}
