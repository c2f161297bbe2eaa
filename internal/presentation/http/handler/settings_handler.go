package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles back office settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// EmailSettingsRequest represents the email settings request body
type EmailSettingsRequest struct {
	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUser     string `json:"smtp_user"`
	SMTPPassword string `json:"smtp_password"`
	FromName     string `json:"from_name"`
	FromAddress  string `json:"from_address"`
	Enabled      bool   `json:"enabled"`
}

// BillingSettingsRequest represents the billing settings request body
type BillingSettingsRequest struct {
	CompanyName       string  `json:"company_name"`
	CompanyAddress    *string `json:"company_address"`
	CompanyEmail      string  `json:"company_email"`
	CompanyPhone      *string `json:"company_phone"`
	TaxID             *string `json:"tax_id"`
	CurrencyCode      string  `json:"currency_code"`
	DefaultTaxPercent string  `json:"default_tax_percent"`
	InvoiceDueDays    int     `json:"invoice_due_days"`
	ProposalValidDays int     `json:"proposal_valid_days"`
	DefaultTemplate   string  `json:"default_template"`
}

// TestEmailRequest represents the test email request body
type TestEmailRequest struct {
	To string `json:"to" binding:"required,email"`
}

// GetEmail handles getting the email settings
// @Summary Get Email Settings
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /admin/settings/email [get]
func (h *SettingsHandler) GetEmail(c *gin.Context) {
	settings, err := h.settingsService.GetEmailSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Email settings retrieved successfully", settings)
}

// UpdateEmail handles updating the email settings
// @Summary Update Email Settings
// @Description Store new SMTP settings and apply them to the running mailer
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body EmailSettingsRequest true "Email settings"
// @Success 200 {object} response.APIResponse
// @Router /admin/settings/email [put]
func (h *SettingsHandler) UpdateEmail(c *gin.Context) {
	var req EmailSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateEmailSettings(c.Request.Context(), &service.EmailSettingsInput{
		SMTPHost:     req.SMTPHost,
		SMTPPort:     req.SMTPPort,
		SMTPUser:     req.SMTPUser,
		SMTPPassword: req.SMTPPassword,
		FromName:     req.FromName,
		FromAddress:  req.FromAddress,
		Enabled:      req.Enabled,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Email settings updated successfully", settings)
}

// SendTestEmail handles sending a test email with the stored settings
// @Summary Send Test Email
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body TestEmailRequest true "Recipient"
// @Success 200 {object} response.APIResponse
// @Router /admin/settings/email/test [post]
func (h *SettingsHandler) SendTestEmail(c *gin.Context) {
	var req TestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.settingsService.SendTestEmail(c.Request.Context(), req.To); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Test email sent successfully", nil)
}

// GetBilling handles getting the billing settings
// @Summary Get Billing Settings
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /admin/settings/billing [get]
func (h *SettingsHandler) GetBilling(c *gin.Context) {
	settings, err := h.settingsService.GetBillingSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Billing settings retrieved successfully", settings)
}

// UpdateBilling handles updating the billing settings
// @Summary Update Billing Settings
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BillingSettingsRequest true "Billing settings"
// @Success 200 {object} response.APIResponse
// @Router /admin/settings/billing [put]
func (h *SettingsHandler) UpdateBilling(c *gin.Context) {
	var req BillingSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	taxPercent, err := parseDecimal(req.DefaultTaxPercent)
	if err != nil {
		response.BadRequest(c, "Invalid default tax percent")
		return
	}

	template := enum.ParseProposalTemplate(req.DefaultTemplate)

	settings, err := h.settingsService.UpdateBillingSettings(c.Request.Context(), &service.BillingSettingsInput{
		CompanyName:       req.CompanyName,
		CompanyAddress:    req.CompanyAddress,
		CompanyEmail:      req.CompanyEmail,
		CompanyPhone:      req.CompanyPhone,
		TaxID:             req.TaxID,
		CurrencyCode:      req.CurrencyCode,
		DefaultTaxPercent: taxPercent,
		InvoiceDueDays:    req.InvoiceDueDays,
		ProposalValidDays: req.ProposalValidDays,
		DefaultTemplate:   template,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Billing settings updated successfully", settings)
}
