package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/pricing"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/pkg/apperror"
	"github.com/hostify/hostify-api/pkg/pagination"
	"github.com/hostify/hostify-api/pkg/pdfgen"
	"github.com/hostify/hostify-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// InvoiceMailer notifies a customer that an invoice was issued
type InvoiceMailer interface {
	SendInvoiceEmail(toEmail, recipientName, invoiceNumber, total string) error
}

// InvoiceService handles invoice operations
type InvoiceService struct {
	invoiceRepo     repository.InvoiceRepository
	invoiceItemRepo repository.InvoiceItemRepository
	customerRepo    repository.CustomerRepository
	billingRepo     repository.BillingSettingsRepository
	mailer          InvoiceMailer
	renderer        *pdfgen.Renderer
	now             func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	invoiceItemRepo repository.InvoiceItemRepository,
	customerRepo repository.CustomerRepository,
	billingRepo repository.BillingSettingsRepository,
	mailer InvoiceMailer,
	renderer *pdfgen.Renderer,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		invoiceItemRepo: invoiceItemRepo,
		customerRepo:    customerRepo,
		billingRepo:     billingRepo,
		mailer:          mailer,
		renderer:        renderer,
		now:             time.Now,
	}
}

// InvoiceItemInput represents a line item input
type InvoiceItemInput struct {
	ProductID   *uuid.UUID
	Name        string
	Description *string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// CreateInvoiceInput represents the input for creating a manual invoice
type CreateInvoiceInput struct {
	CustomerID    uuid.UUID
	DiscountType  enum.DiscountType
	DiscountValue decimal.Decimal
	TaxPercent    decimal.Decimal
	Notes         *string
	DueDate       *time.Time
	Items         []InvoiceItemInput
}

// CreateInvoice creates a manual draft invoice for a customer
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "at least one item is required"},
		})
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	nextNum, err := s.invoiceRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		lines = append(lines, pricing.LineItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
	}
	totals := pricing.Calculate(lines, pricing.Discount{Type: input.DiscountType, Value: input.DiscountValue}, input.TaxPercent)

	now := s.now()
	dueDate := now.AddDate(0, 0, 14)
	if billing, err := s.billingRepo.Get(ctx); err == nil && billing != nil && billing.InvoiceDueDays > 0 {
		dueDate = now.AddDate(0, 0, billing.InvoiceDueDays)
	}
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	invoice := &entity.Invoice{
		ID:              uuid.New(),
		CustomerID:      &customer.ID,
		Number:          utils.FormatSequenceNumber("INV", nextNum),
		Source:          entity.InvoiceSourceManual,
		BilledToName:    customer.Name,
		BilledToEmail:   customer.Email,
		BilledToCompany: customer.Company,
		BilledToAddress: customer.Address,
		BilledToPhone:   customer.Phone,
		DiscountType:    input.DiscountType,
		DiscountValue:   input.DiscountValue,
		TaxPercent:      input.TaxPercent,
		SubTotal:        totals.SubTotal,
		DiscountAmount:  totals.DiscountAmount,
		TaxAmount:       totals.TaxAmount,
		Total:           totals.Total,
		Status:          enum.InvoiceStatusDraft,
		Notes:           input.Notes,
		IssueDate:       now,
		DueDate:         dueDate,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	items := make([]entity.InvoiceItem, 0, len(input.Items))
	for i, in := range input.Items {
		items = append(items, entity.InvoiceItem{
			InvoiceID:   invoice.ID,
			ProductID:   in.ProductID,
			Name:        in.Name,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			LineTotal:   pricing.LineTotal(pricing.LineItem{Quantity: in.Quantity, UnitPrice: in.UnitPrice}),
			SortOrder:   i,
		})
	}
	if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		CustomerID: input.CustomerID,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

func (s *InvoiceService) transition(ctx context.Context, id uuid.UUID, target enum.InvoiceStatus) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if !invoice.Status.CanTransitionTo(target) {
		return nil, apperror.NewIneligibleError(
			"Invoice cannot move from " + invoice.Status.String() + " to " + target.String())
	}

	invoice.Status = target
	if target == enum.InvoiceStatusPaid {
		now := s.now()
		invoice.PaidAt = &now
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// IssueInvoice moves a draft invoice to unpaid and emails the customer
func (s *InvoiceService) IssueInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.transition(ctx, id, enum.InvoiceStatusUnpaid)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil && invoice.BilledToEmail != "" {
		if err := s.mailer.SendInvoiceEmail(invoice.BilledToEmail, invoice.BilledToName, invoice.Number, invoice.Total.Round(2).StringFixed(2)); err != nil {
			return nil, apperror.NewAppError(502, "Invoice was issued but the email could not be delivered")
		}
	}
	return invoice, nil
}

// MarkPaid records payment of an unpaid invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return s.transition(ctx, id, enum.InvoiceStatusPaid)
}

// CancelInvoice cancels a draft or unpaid invoice
func (s *InvoiceService) CancelInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return s.transition(ctx, id, enum.InvoiceStatusCancelled)
}

// RefundInvoice refunds a paid invoice
func (s *InvoiceService) RefundInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return s.transition(ctx, id, enum.InvoiceStatusRefunded)
}

// DeleteInvoice deletes a draft invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusDraft {
		return apperror.NewIneligibleError("Only draft invoices can be deleted")
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// RenderPDF renders the invoice document
func (s *InvoiceService) RenderPDF(ctx context.Context, id uuid.UUID, template string) ([]byte, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := pdfgen.Document{
		Kind:   "INVOICE",
		Number: invoice.Number,
		Recipient: pdfgen.Party{
			Name:  invoice.BilledToName,
			Email: invoice.BilledToEmail,
		},
		SubTotal:       invoice.SubTotal,
		DiscountAmount: invoice.DiscountAmount,
		TaxPercent:     invoice.TaxPercent,
		TaxAmount:      invoice.TaxAmount,
		Total:          invoice.Total,
		IssueDate:      invoice.IssueDate,
		ExpiryLabel:    "Due date",
		Template:       pdfgen.Template(enum.ParseProposalTemplate(template).String()),
	}
	dueDate := invoice.DueDate
	doc.ExpiryDate = &dueDate
	if invoice.BilledToCompany != nil {
		doc.Recipient.Company = *invoice.BilledToCompany
	}
	if invoice.BilledToAddress != nil {
		doc.Recipient.Address = *invoice.BilledToAddress
	}
	if invoice.Notes != nil {
		doc.Notes = *invoice.Notes
	}

	if billing, err := s.billingRepo.Get(ctx); err == nil && billing != nil {
		doc.Issuer = pdfgen.Party{
			Name:  billing.CompanyName,
			Email: billing.CompanyEmail,
		}
		if billing.CompanyAddress != nil {
			doc.Issuer.Address = *billing.CompanyAddress
		}
		doc.CurrencyCode = billing.CurrencyCode
		if template == "" {
			doc.Template = pdfgen.Template(billing.DefaultTemplate.String())
		}
	}

	for _, item := range invoice.Items {
		line := pdfgen.Line{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
		if item.Description != nil {
			line.Description = *item.Description
		}
		doc.Items = append(doc.Items, line)
	}

	data, err := s.renderer.Invoice(doc)
	if err != nil {
		return nil, apperror.NewAppError(500, "Failed to render invoice PDF")
	}
	return data, nil
}
