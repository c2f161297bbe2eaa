package repository

import (
	"context"

	"github.com/hostify/hostify-api/internal/domain/entity"
)

// EmailSettingsRepository defines the interface for the SMTP settings row.
// The table holds at most one record.
type EmailSettingsRepository interface {
	Get(ctx context.Context) (*entity.EmailSettings, error)
	Upsert(ctx context.Context, settings *entity.EmailSettings) error
}

// BillingSettingsRepository defines the interface for the billing defaults row.
// The table holds at most one record.
type BillingSettingsRepository interface {
	Get(ctx context.Context) (*entity.BillingSettings, error)
	Upsert(ctx context.Context, settings *entity.BillingSettings) error
}
