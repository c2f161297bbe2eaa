package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
	"sync"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending. Its configuration can be replaced at
// runtime when an admin saves new SMTP settings.
type EmailService struct {
	mu     sync.RWMutex
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// UpdateConfig swaps in new SMTP settings, keeping the frontend URL
func (s *EmailService) UpdateConfig(config EmailConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if config.FrontendURL == "" {
		config.FrontendURL = s.config.FrontendURL
	}
	s.config = config
}

func (s *EmailService) currentConfig() EmailConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	cfg := s.currentConfig()

	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		cfg.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.render(passwordResetTemplate, map[string]string{
		"Email":     toEmail,
		"ActionURL": resetURL,
		"AppName":   cfg.FromName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Reset Your Password - %s", cfg.FromName)
	message := s.buildHTMLEmail(cfg, toEmail, subject, htmlContent)

	return s.sendEmail(cfg, toEmail, message)
}

// SendProposalEmail sends the recipient a link to view a proposal
func (s *EmailService) SendProposalEmail(toEmail, recipientName, proposalTitle, publicToken string) error {
	cfg := s.currentConfig()

	viewURL := fmt.Sprintf("%s/proposals/view/%s", cfg.FrontendURL, url.PathEscape(publicToken))

	htmlContent, err := s.render(proposalTemplate, map[string]string{
		"Name":      recipientName,
		"Title":     proposalTitle,
		"ActionURL": viewURL,
		"AppName":   cfg.FromName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("You have received a proposal - %s", cfg.FromName)
	message := s.buildHTMLEmail(cfg, toEmail, subject, htmlContent)

	return s.sendEmail(cfg, toEmail, message)
}

// SendInvoiceEmail notifies a customer that an invoice was issued
func (s *EmailService) SendInvoiceEmail(toEmail, recipientName, invoiceNumber, total string) error {
	cfg := s.currentConfig()

	htmlContent, err := s.render(invoiceTemplate, map[string]string{
		"Name":    recipientName,
		"Number":  invoiceNumber,
		"Total":   total,
		"AppName": cfg.FromName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Invoice %s - %s", invoiceNumber, cfg.FromName)
	message := s.buildHTMLEmail(cfg, toEmail, subject, htmlContent)

	return s.sendEmail(cfg, toEmail, message)
}

// SendTicketReplyEmail notifies a customer that staff replied to their ticket
func (s *EmailService) SendTicketReplyEmail(toEmail, recipientName, ticketNumber, subjectLine string) error {
	cfg := s.currentConfig()

	htmlContent, err := s.render(ticketReplyTemplate, map[string]string{
		"Name":    recipientName,
		"Number":  ticketNumber,
		"Subject": subjectLine,
		"AppName": cfg.FromName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("New reply on ticket %s - %s", ticketNumber, cfg.FromName)
	message := s.buildHTMLEmail(cfg, toEmail, subject, htmlContent)

	return s.sendEmail(cfg, toEmail, message)
}

// SendTestEmail sends a probe message to verify the SMTP configuration
func (s *EmailService) SendTestEmail(toEmail string) error {
	cfg := s.currentConfig()

	htmlContent, err := s.render(testEmailTemplate, map[string]string{
		"AppName": cfg.FromName,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Test email - %s", cfg.FromName)
	message := s.buildHTMLEmail(cfg, toEmail, subject, htmlContent)

	return s.sendEmail(cfg, toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(cfg EmailConfig, to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)

	auth := smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)

	err := smtp.SendMail(addr, auth, cfg.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(cfg EmailConfig, to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		cfg.FromName,
		cfg.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func (s *EmailService) render(tmplText string, data map[string]string) (string, error) {
	tmpl, err := template.New("email").Parse(tmplText)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// passwordResetTemplate is the HTML template for password reset emails
const passwordResetTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Reset Your Password</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; margin: 0; padding: 20px;">
    <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
        <h2 style="color: #333;">{{.AppName}}</h2>
        <p>Hello,</p>
        <p>We received a request to reset the password for <strong>{{.Email}}</strong>.
           Click the button below to choose a new password.</p>
        <p style="text-align: center; margin: 32px 0;">
            <a href="{{.ActionURL}}" style="background: #2563eb; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Reset Password</a>
        </p>
        <p style="color: #666; font-size: 13px;">If you did not request a reset, you can safely ignore this email. The link expires in one hour.</p>
    </div>
</body>
</html>
`

// proposalTemplate is the HTML template for proposal delivery emails
const proposalTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Proposal</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; margin: 0; padding: 20px;">
    <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
        <h2 style="color: #333;">{{.AppName}}</h2>
        <p>Hello {{.Name}},</p>
        <p>You have received a proposal: <strong>{{.Title}}</strong>.</p>
        <p style="text-align: center; margin: 32px 0;">
            <a href="{{.ActionURL}}" style="background: #2563eb; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">View Proposal</a>
        </p>
        <p style="color: #666; font-size: 13px;">You can accept or decline the proposal from the page above.</p>
    </div>
</body>
</html>
`

// invoiceTemplate is the HTML template for invoice notification emails
const invoiceTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Invoice Issued</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; margin: 0; padding: 20px;">
    <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
        <h2 style="color: #333;">{{.AppName}}</h2>
        <p>Hello {{.Name}},</p>
        <p>Invoice <strong>{{.Number}}</strong> has been issued to your account for a total of <strong>{{.Total}}</strong>.</p>
        <p style="color: #666; font-size: 13px;">Log in to your client area to view and pay the invoice.</p>
    </div>
</body>
</html>
`

// ticketReplyTemplate is the HTML template for ticket reply notifications
const ticketReplyTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Ticket Reply</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; margin: 0; padding: 20px;">
    <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
        <h2 style="color: #333;">{{.AppName}}</h2>
        <p>Hello {{.Name}},</p>
        <p>There is a new reply on your support ticket <strong>{{.Number}}</strong> ({{.Subject}}).</p>
        <p style="color: #666; font-size: 13px;">Log in to your client area to read and respond.</p>
    </div>
</body>
</html>
`

// testEmailTemplate is the HTML template for SMTP verification messages
const testEmailTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Test Email</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; margin: 0; padding: 20px;">
    <div style="max-width: 560px; margin: 0 auto; background: #ffffff; border-radius: 8px; padding: 32px;">
        <h2 style="color: #333;">{{.AppName}}</h2>
        <p>This is a test message confirming your SMTP settings are working.</p>
    </div>
</body>
</html>
`
