package service

import (
	"context"

	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/pkg/apperror"
	"github.com/hostify/hostify-api/pkg/email"
	"github.com/shopspring/decimal"
)

// TestMailer verifies an SMTP configuration by sending a message through it
type TestMailer interface {
	UpdateConfig(config email.EmailConfig)
	SendTestEmail(toEmail string) error
}

// SettingsService manages the email and billing settings rows
type SettingsService struct {
	emailRepo   repository.EmailSettingsRepository
	billingRepo repository.BillingSettingsRepository
	mailer      TestMailer
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	emailRepo repository.EmailSettingsRepository,
	billingRepo repository.BillingSettingsRepository,
	mailer TestMailer,
) *SettingsService {
	return &SettingsService{
		emailRepo:   emailRepo,
		billingRepo: billingRepo,
		mailer:      mailer,
	}
}

// GetEmailSettings returns the stored SMTP settings, or an empty record
// when none have been saved yet
func (s *SettingsService) GetEmailSettings(ctx context.Context) (*entity.EmailSettings, error) {
	settings, err := s.emailRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &entity.EmailSettings{SMTPPort: 587}, nil
	}
	return settings, nil
}

// EmailSettingsInput represents the input for updating SMTP settings
type EmailSettingsInput struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	FromName     string
	FromAddress  string
	Enabled      bool
}

// UpdateEmailSettings stores new SMTP settings and applies them to the
// running mailer immediately. A blank password keeps the stored one.
func (s *SettingsService) UpdateEmailSettings(ctx context.Context, input *EmailSettingsInput) (*entity.EmailSettings, error) {
	if input.Enabled {
		var fieldErrors []apperror.FieldError
		if input.SMTPHost == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "smtp_host", Message: "smtp_host is required when email is enabled"})
		}
		if input.FromAddress == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "from_address", Message: "from_address is required when email is enabled"})
		}
		if len(fieldErrors) > 0 {
			return nil, apperror.NewValidationError(fieldErrors)
		}
	}

	settings, err := s.emailRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.EmailSettings{}
	}

	settings.SMTPHost = input.SMTPHost
	settings.SMTPPort = input.SMTPPort
	settings.SMTPUser = input.SMTPUser
	if input.SMTPPassword != "" {
		settings.SMTPPassword = input.SMTPPassword
	}
	settings.FromName = input.FromName
	settings.FromAddress = input.FromAddress
	settings.Enabled = input.Enabled

	if err := s.emailRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	if settings.Enabled {
		s.mailer.UpdateConfig(email.EmailConfig{
			SMTPHost:     settings.SMTPHost,
			SMTPPort:     settings.SMTPPort,
			SMTPUsername: settings.SMTPUser,
			SMTPPassword: settings.SMTPPassword,
			FromName:     settings.FromName,
			FromEmail:    settings.FromAddress,
		})
	}

	return settings, nil
}

// SendTestEmail sends a probe message through the current SMTP settings
func (s *SettingsService) SendTestEmail(ctx context.Context, toEmail string) error {
	if toEmail == "" {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "email", Message: "email is required"},
		})
	}

	settings, err := s.emailRepo.Get(ctx)
	if err != nil {
		return err
	}
	if settings == nil || !settings.Enabled {
		return apperror.NewBadRequestError("Email sending is not enabled")
	}

	if err := s.mailer.SendTestEmail(toEmail); err != nil {
		return apperror.NewAppError(502, "Test email could not be delivered: "+err.Error())
	}
	return nil
}

// GetBillingSettings returns the billing defaults, seeding built-in values
// when no row exists yet
func (s *SettingsService) GetBillingSettings(ctx context.Context) (*entity.BillingSettings, error) {
	settings, err := s.billingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &entity.BillingSettings{
			CurrencyCode:      "USD",
			InvoiceDueDays:    14,
			ProposalValidDays: 30,
		}, nil
	}
	return settings, nil
}

// BillingSettingsInput represents the input for updating billing defaults
type BillingSettingsInput struct {
	CompanyName       string
	CompanyAddress    *string
	CompanyEmail      string
	CompanyPhone      *string
	TaxID             *string
	CurrencyCode      string
	DefaultTaxPercent decimal.Decimal
	InvoiceDueDays    int
	ProposalValidDays int
	DefaultTemplate   enum.ProposalTemplate
}

// UpdateBillingSettings stores new billing defaults
func (s *SettingsService) UpdateBillingSettings(ctx context.Context, input *BillingSettingsInput) (*entity.BillingSettings, error) {
	var fieldErrors []apperror.FieldError
	if input.DefaultTaxPercent.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "default_tax_percent", Message: "default_tax_percent must not be negative"})
	}
	if input.InvoiceDueDays < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "invoice_due_days", Message: "invoice_due_days must not be negative"})
	}
	if input.ProposalValidDays < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "proposal_valid_days", Message: "proposal_valid_days must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	settings, err := s.billingRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.BillingSettings{}
	}

	settings.CompanyName = input.CompanyName
	settings.CompanyAddress = input.CompanyAddress
	settings.CompanyEmail = input.CompanyEmail
	settings.CompanyPhone = input.CompanyPhone
	settings.TaxID = input.TaxID
	if input.CurrencyCode != "" {
		settings.CurrencyCode = input.CurrencyCode
	}
	settings.DefaultTaxPercent = input.DefaultTaxPercent
	settings.InvoiceDueDays = input.InvoiceDueDays
	settings.ProposalValidDays = input.ProposalValidDays
	settings.DefaultTemplate = input.DefaultTemplate

	if err := s.billingRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
