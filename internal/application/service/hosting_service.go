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

// HostingService manages provisioned hosting services owned by customers
type HostingService struct {
	serviceRepo  repository.ServiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewHostingService creates a new hosting service manager
func NewHostingService(
	serviceRepo repository.ServiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *HostingService {
	return &HostingService{
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// ServiceInput represents the input for creating or updating a service
type ServiceInput struct {
	CustomerID      uuid.UUID
	ProductID       *uuid.UUID
	Label           string
	DomainName      *string
	Status          enum.ServiceStatus
	BillingCycle    enum.BillingCycle
	RecurringAmount decimal.Decimal
	NextDueAt       *time.Time
}

// CreateService creates a provisioned service for a customer
func (s *HostingService) CreateService(ctx context.Context, input *ServiceInput) (*entity.Service, error) {
	if input.Label == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "label", Message: "label is required"},
		})
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.ProductID != nil {
		product, err := s.productRepo.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
	}

	svc := &entity.Service{
		CustomerID:      input.CustomerID,
		ProductID:       input.ProductID,
		Label:           input.Label,
		DomainName:      input.DomainName,
		Status:          input.Status,
		BillingCycle:    input.BillingCycle,
		RecurringAmount: input.RecurringAmount,
		NextDueAt:       input.NextDueAt,
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService retrieves a service by ID
func (s *HostingService) GetService(ctx context.Context, id uuid.UUID) (*entity.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return svc, nil
}

// UpdateService updates a service record
func (s *HostingService) UpdateService(ctx context.Context, id uuid.UUID, input *ServiceInput) (*entity.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.ProductID = input.ProductID
	svc.Label = input.Label
	svc.DomainName = input.DomainName
	svc.Status = input.Status
	svc.BillingCycle = input.BillingCycle
	svc.RecurringAmount = input.RecurringAmount
	svc.NextDueAt = input.NextDueAt

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService deletes a service record
func (s *HostingService) DeleteService(ctx context.Context, id uuid.UUID) error {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return apperror.NewNotFoundError("Service")
	}
	return s.serviceRepo.Delete(ctx, id)
}

// ListServicesInput represents the input for listing services
type ListServicesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ServiceStatus
	CustomerID *uuid.UUID
}

// ListServices lists services with filtering
func (s *HostingService) ListServices(ctx context.Context, input *ListServicesInput) (*pagination.PaginatedResult[entity.Service], error) {
	params := &repository.ServiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		CustomerID: input.CustomerID,
	}

	services, total, err := s.serviceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// ListOwnServices lists the services belonging to the customer linked to a user
func (s *HostingService) ListOwnServices(ctx context.Context, userID uuid.UUID) ([]entity.Service, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return []entity.Service{}, nil
	}
	return s.serviceRepo.ListByCustomer(ctx, customer.ID)
}
