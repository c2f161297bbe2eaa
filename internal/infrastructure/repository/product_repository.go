package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/domain/entity"
	domainRepo "github.com/hostify/hostify-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Preload("Group").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).Preload("Group").First(&product, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR slug ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.GroupID != nil {
		query = query.Where("group_id = ?", *params.GroupID)
	}

	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "sort_order"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Group").
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListActive(ctx context.Context, groupID *uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if groupID != nil {
		query = query.Where("group_id = ?", *groupID)
	}
	err := query.Preload("Group").Order("sort_order ASC").Find(&products).Error
	return products, err
}

type productGroupRepository struct {
	db *gorm.DB
}

// NewProductGroupRepository creates a new product group repository
func NewProductGroupRepository(db *gorm.DB) domainRepo.ProductGroupRepository {
	return &productGroupRepository{db: db}
}

func (r *productGroupRepository) Create(ctx context.Context, group *entity.ProductGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *productGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductGroup, error) {
	var group entity.ProductGroup
	err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *productGroupRepository) GetBySlug(ctx context.Context, slug string) (*entity.ProductGroup, error) {
	var group entity.ProductGroup
	err := r.db.WithContext(ctx).First(&group, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *productGroupRepository) Update(ctx context.Context, group *entity.ProductGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *productGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ProductGroup{}, "id = ?", id).Error
}

func (r *productGroupRepository) List(ctx context.Context) ([]entity.ProductGroup, error) {
	var groups []entity.ProductGroup
	err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&groups).Error
	return groups, err
}
