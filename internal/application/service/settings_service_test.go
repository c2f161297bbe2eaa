package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture() (*SettingsService, *fakeEmailSettingsRepo, *fakeBillingRepo, *fakeSettingsMailer) {
	emailRepo := &fakeEmailSettingsRepo{}
	billingRepo := &fakeBillingRepo{}
	mailer := &fakeSettingsMailer{}
	return NewSettingsService(emailRepo, billingRepo, mailer), emailRepo, billingRepo, mailer
}

func TestGetEmailSettingsDefaults(t *testing.T) {
	svc, _, _, _ := newSettingsFixture()

	settings, err := svc.GetEmailSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 587, settings.SMTPPort)
	assert.False(t, settings.Enabled)
}

func TestUpdateEmailSettingsAppliesToMailer(t *testing.T) {
	svc, _, _, mailer := newSettingsFixture()

	settings, err := svc.UpdateEmailSettings(context.Background(), &EmailSettingsInput{
		SMTPHost:     "smtp.example.test",
		SMTPPort:     2525,
		SMTPUser:     "mailer",
		SMTPPassword: "hunter2",
		FromName:     "Hostify Billing",
		FromAddress:  "billing@hostify.test",
		Enabled:      true,
	})
	require.NoError(t, err)
	assert.True(t, settings.Enabled)

	require.Len(t, mailer.configs, 1)
	assert.Equal(t, "smtp.example.test", mailer.configs[0].SMTPHost)
	assert.Equal(t, 2525, mailer.configs[0].SMTPPort)
	assert.Equal(t, "hunter2", mailer.configs[0].SMTPPassword)
}

func TestUpdateEmailSettingsBlankPasswordKeepsStored(t *testing.T) {
	svc, emailRepo, _, _ := newSettingsFixture()

	_, err := svc.UpdateEmailSettings(context.Background(), &EmailSettingsInput{
		SMTPHost: "smtp.example.test", SMTPPassword: "original", FromAddress: "a@b.test", Enabled: true,
	})
	require.NoError(t, err)

	_, err = svc.UpdateEmailSettings(context.Background(), &EmailSettingsInput{
		SMTPHost: "smtp.example.test", SMTPPassword: "", FromAddress: "a@b.test", Enabled: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "original", emailRepo.settings.SMTPPassword)
}

func TestUpdateEmailSettingsValidatesWhenEnabled(t *testing.T) {
	svc, _, _, mailer := newSettingsFixture()

	_, err := svc.UpdateEmailSettings(context.Background(), &EmailSettingsInput{Enabled: true})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(t, err))

	// Disabled settings can be saved incomplete and do not touch the mailer
	_, err = svc.UpdateEmailSettings(context.Background(), &EmailSettingsInput{Enabled: false})
	require.NoError(t, err)
	assert.Empty(t, mailer.configs)
}

func TestSendTestEmailRequiresEnabledSettings(t *testing.T) {
	svc, _, _, mailer := newSettingsFixture()

	err := svc.SendTestEmail(context.Background(), "probe@example.test")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))

	_, err = svc.UpdateEmailSettings(context.Background(), &EmailSettingsInput{
		SMTPHost: "smtp.example.test", FromAddress: "a@b.test", Enabled: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.SendTestEmail(context.Background(), "probe@example.test"))
	assert.Equal(t, 1, mailer.testEmails)
}

func TestSendTestEmailDeliveryFailure(t *testing.T) {
	svc, _, _, mailer := newSettingsFixture()

	_, err := svc.UpdateEmailSettings(context.Background(), &EmailSettingsInput{
		SMTPHost: "smtp.example.test", FromAddress: "a@b.test", Enabled: true,
	})
	require.NoError(t, err)

	mailer.fail = true
	err = svc.SendTestEmail(context.Background(), "probe@example.test")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, appErrorCode(t, err))
}

func TestGetBillingSettingsDefaults(t *testing.T) {
	svc, _, _, _ := newSettingsFixture()

	settings, err := svc.GetBillingSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", settings.CurrencyCode)
	assert.Equal(t, 14, settings.InvoiceDueDays)
	assert.Equal(t, 30, settings.ProposalValidDays)
}

func TestUpdateBillingSettingsRejectsNegatives(t *testing.T) {
	svc, _, _, _ := newSettingsFixture()

	_, err := svc.UpdateBillingSettings(context.Background(), &BillingSettingsInput{
		DefaultTaxPercent: decimal.NewFromInt(-1),
		InvoiceDueDays:    -3,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErrorCode(t, err))
}

func TestUpdateBillingSettingsPersists(t *testing.T) {
	svc, _, billingRepo, _ := newSettingsFixture()

	settings, err := svc.UpdateBillingSettings(context.Background(), &BillingSettingsInput{
		CompanyName:       "Hostify Oy",
		CompanyEmail:      "hello@hostify.test",
		CurrencyCode:      "EUR",
		DefaultTaxPercent: decimal.NewFromFloat(25.5),
		InvoiceDueDays:    21,
		ProposalValidDays: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", settings.CurrencyCode)
	assert.Equal(t, 21, billingRepo.settings.InvoiceDueDays)
	assert.True(t, billingRepo.settings.DefaultTaxPercent.Equal(decimal.NewFromFloat(25.5)))
}
