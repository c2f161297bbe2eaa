package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/pkg/apperror"
	"github.com/hostify/hostify-api/pkg/pagination"
	"github.com/hostify/hostify-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ProductService handles the hosting plan catalog
type ProductService struct {
	productRepo repository.ProductRepository
	groupRepo   repository.ProductGroupRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, groupRepo repository.ProductGroupRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		groupRepo:   groupRepo,
	}
}

// ProductInput represents the input for creating or updating a product
type ProductInput struct {
	GroupID      *uuid.UUID
	Name         string
	Slug         string
	Description  *string
	MonthlyPrice decimal.Decimal
	AnnualPrice  decimal.Decimal
	SetupFee     decimal.Decimal
	Active       bool
	SortOrder    int
}

func (s *ProductService) validateProduct(input *ProductInput) error {
	var fieldErrors []apperror.FieldError
	if input.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.MonthlyPrice.IsNegative() || input.AnnualPrice.IsNegative() || input.SetupFee.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "prices must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if err := s.validateProduct(input); err != nil {
		return nil, err
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product with this slug already exists")
	}

	if input.GroupID != nil {
		group, err := s.groupRepo.GetByID(ctx, *input.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, apperror.NewNotFoundError("Product group")
		}
	}

	product := &entity.Product{
		GroupID:      input.GroupID,
		Name:         input.Name,
		Slug:         slug,
		Description:  input.Description,
		MonthlyPrice: input.MonthlyPrice,
		AnnualPrice:  input.AnnualPrice,
		SetupFee:     input.SetupFee,
		Active:       input.Active,
		SortOrder:    input.SortOrder,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductBySlug retrieves an active product for the public detail page
func (s *ProductService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	if err := s.validateProduct(input); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Slug != "" && input.Slug != product.Slug {
		existing, err := s.productRepo.GetBySlug(ctx, input.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, apperror.NewConflictError("A product with this slug already exists")
		}
		product.Slug = input.Slug
	}

	product.GroupID = input.GroupID
	product.Name = input.Name
	product.Description = input.Description
	product.MonthlyPrice = input.MonthlyPrice
	product.AnnualPrice = input.AnnualPrice
	product.SetupFee = input.SetupFee
	product.Active = input.Active
	product.SortOrder = input.SortOrder

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProductsInput represents the input for listing products
type ListProductsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	GroupID    *uuid.UUID
	Active     *bool
}

// ListProducts lists products for the admin side
func (s *ProductService) ListProducts(ctx context.Context, input *ListProductsInput) (*pagination.PaginatedResult[entity.Product], error) {
	params := &repository.ProductFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		GroupID:    input.GroupID,
		Active:     input.Active,
	}

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListCatalog lists active products for the storefront, optionally by group
func (s *ProductService) ListCatalog(ctx context.Context, groupSlug string) ([]entity.Product, error) {
	var groupID *uuid.UUID
	if groupSlug != "" {
		group, err := s.groupRepo.GetBySlug(ctx, groupSlug)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, apperror.NewNotFoundError("Product group")
		}
		groupID = &group.ID
	}
	return s.productRepo.ListActive(ctx, groupID)
}

// GroupInput represents the input for creating or updating a product group
type GroupInput struct {
	Name      string
	Slug      string
	SortOrder int
}

// CreateGroup creates a new product group
func (s *ProductService) CreateGroup(ctx context.Context, input *GroupInput) (*entity.ProductGroup, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "name is required"},
		})
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}

	existing, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A product group with this slug already exists")
	}

	group := &entity.ProductGroup{
		Name:      input.Name,
		Slug:      slug,
		SortOrder: input.SortOrder,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateGroup updates a product group
func (s *ProductService) UpdateGroup(ctx context.Context, id uuid.UUID, input *GroupInput) (*entity.ProductGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.NewNotFoundError("Product group")
	}

	group.Name = input.Name
	if input.Slug != "" {
		group.Slug = input.Slug
	}
	group.SortOrder = input.SortOrder

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup deletes a product group
func (s *ProductService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if group == nil {
		return apperror.NewNotFoundError("Product group")
	}
	return s.groupRepo.Delete(ctx, id)
}

// ListGroups lists all product groups
func (s *ProductService) ListGroups(ctx context.Context) ([]entity.ProductGroup, error) {
	return s.groupRepo.List(ctx)
}
