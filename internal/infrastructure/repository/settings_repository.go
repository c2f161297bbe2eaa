package repository

import (
	"context"
	"errors"

	"github.com/hostify/hostify-api/internal/domain/entity"
	domainRepo "github.com/hostify/hostify-api/internal/domain/repository"
	"gorm.io/gorm"
)

type emailSettingsRepository struct {
	db *gorm.DB
}

// NewEmailSettingsRepository creates a new email settings repository
func NewEmailSettingsRepository(db *gorm.DB) domainRepo.EmailSettingsRepository {
	return &emailSettingsRepository{db: db}
}

func (r *emailSettingsRepository) Get(ctx context.Context) (*entity.EmailSettings, error) {
	var settings entity.EmailSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *emailSettingsRepository) Upsert(ctx context.Context, settings *entity.EmailSettings) error {
	var existing entity.EmailSettings
	err := r.db.WithContext(ctx).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(settings).Error
	}
	if err != nil {
		return err
	}
	settings.ID = existing.ID
	return r.db.WithContext(ctx).Save(settings).Error
}

type billingSettingsRepository struct {
	db *gorm.DB
}

// NewBillingSettingsRepository creates a new billing settings repository
func NewBillingSettingsRepository(db *gorm.DB) domainRepo.BillingSettingsRepository {
	return &billingSettingsRepository{db: db}
}

func (r *billingSettingsRepository) Get(ctx context.Context) (*entity.BillingSettings, error) {
	var settings entity.BillingSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *billingSettingsRepository) Upsert(ctx context.Context, settings *entity.BillingSettings) error {
	var existing entity.BillingSettings
	err := r.db.WithContext(ctx).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(settings).Error
	}
	if err != nil {
		return err
	}
	settings.ID = existing.ID
	return r.db.WithContext(ctx).Save(settings).Error
}
