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

// ProposalMailer delivers the public proposal link to the recipient
type ProposalMailer interface {
	SendProposalEmail(toEmail, recipientName, proposalTitle, publicToken string) error
}

// Provisioner is signalled when an accepted proposal or paid order needs
// services set up for the customer
type Provisioner interface {
	ProvisionInvoice(ctx context.Context, invoice *entity.Invoice, items []entity.InvoiceItem) error
}

// ProposalService handles the proposal lifecycle
type ProposalService struct {
	proposalRepo     repository.ProposalRepository
	proposalItemRepo repository.ProposalItemRepository
	customerRepo     repository.CustomerRepository
	invoiceRepo      repository.InvoiceRepository
	invoiceItemRepo  repository.InvoiceItemRepository
	billingRepo      repository.BillingSettingsRepository
	mailer           ProposalMailer
	provisioner      Provisioner
	renderer         *pdfgen.Renderer
	now              func() time.Time
}

// NewProposalService creates a new proposal service
func NewProposalService(
	proposalRepo repository.ProposalRepository,
	proposalItemRepo repository.ProposalItemRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	invoiceItemRepo repository.InvoiceItemRepository,
	billingRepo repository.BillingSettingsRepository,
	mailer ProposalMailer,
	provisioner Provisioner,
	renderer *pdfgen.Renderer,
) *ProposalService {
	return &ProposalService{
		proposalRepo:     proposalRepo,
		proposalItemRepo: proposalItemRepo,
		customerRepo:     customerRepo,
		invoiceRepo:      invoiceRepo,
		invoiceItemRepo:  invoiceItemRepo,
		billingRepo:      billingRepo,
		mailer:           mailer,
		provisioner:      provisioner,
		renderer:         renderer,
		now:              time.Now,
	}
}

// ProposalItemInput represents a line item input
type ProposalItemInput struct {
	ProductID   *uuid.UUID
	Name        string
	Description *string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// NewCustomerInput carries inline recipient fields when no customer exists yet
type NewCustomerInput struct {
	Name    string
	Email   string
	Company *string
}

// CreateProposalInput represents the input for creating a proposal
type CreateProposalInput struct {
	UserID        uuid.UUID
	CustomerID    *uuid.UUID
	NewCustomer   *NewCustomerInput
	Title         string
	Description   *string
	DiscountType  enum.DiscountType
	DiscountValue decimal.Decimal
	TaxPercent    decimal.Decimal
	Notes         *string
	Terms         *string
	ValidUntil    *time.Time
	Template      enum.ProposalTemplate
	Items         []ProposalItemInput
}

func validateProposalItems(items []ProposalItemInput) error {
	if len(items) == 0 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "at least one item is required"},
		})
	}
	for _, item := range items {
		if item.Name == "" {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "item name must not be empty"},
			})
		}
	}
	return nil
}

func (s *ProposalService) resolveRecipient(ctx context.Context, customerID *uuid.UUID, inline *NewCustomerInput) (*entity.Customer, error) {
	if customerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		return customer, nil
	}

	if inline == nil || inline.Name == "" || inline.Email == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "customer", Message: "an existing customer id or new customer name and email is required"},
		})
	}

	// Reuse a customer with the same email rather than duplicating
	existing, err := s.customerRepo.GetByEmail(ctx, inline.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	customer := &entity.Customer{
		Name:    inline.Name,
		Email:   inline.Email,
		Company: inline.Company,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *ProposalService) buildItems(proposalID uuid.UUID, inputs []ProposalItemInput) ([]entity.ProposalItem, []pricing.LineItem) {
	items := make([]entity.ProposalItem, 0, len(inputs))
	lines := make([]pricing.LineItem, 0, len(inputs))
	for i, in := range inputs {
		lines = append(lines, pricing.LineItem{Quantity: in.Quantity, UnitPrice: in.UnitPrice})
		items = append(items, entity.ProposalItem{
			ProposalID:  proposalID,
			ProductID:   in.ProductID,
			Name:        in.Name,
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			LineTotal:   pricing.LineTotal(pricing.LineItem{Quantity: in.Quantity, UnitPrice: in.UnitPrice}),
			SortOrder:   i,
		})
	}
	return items, lines
}

// CreateProposal creates a new draft proposal
func (s *ProposalService) CreateProposal(ctx context.Context, input *CreateProposalInput) (*entity.Proposal, error) {
	if err := validateProposalItems(input.Items); err != nil {
		return nil, err
	}

	customer, err := s.resolveRecipient(ctx, input.CustomerID, input.NewCustomer)
	if err != nil {
		return nil, err
	}

	nextNum, err := s.proposalRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	publicToken, err := utils.GeneratePublicToken()
	if err != nil {
		return nil, err
	}

	validUntil := time.Time{}
	if input.ValidUntil != nil {
		validUntil = *input.ValidUntil
	} else {
		validDays := 30
		if billing, err := s.billingRepo.Get(ctx); err == nil && billing != nil && billing.ProposalValidDays > 0 {
			validDays = billing.ProposalValidDays
		}
		validUntil = s.now().AddDate(0, 0, validDays)
	}

	proposal := &entity.Proposal{
		ID:            uuid.New(),
		UserID:        input.UserID,
		CustomerID:    &customer.ID,
		Number:        utils.FormatSequenceNumber("PRO", nextNum),
		Title:         input.Title,
		Description:   input.Description,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		DiscountType:  input.DiscountType,
		DiscountValue: input.DiscountValue,
		TaxPercent:    input.TaxPercent,
		Notes:         input.Notes,
		Terms:         input.Terms,
		ValidUntil:    validUntil,
		Template:      input.Template,
		Status:        enum.ProposalStatusDraft,
		PublicToken:   publicToken,
		Version:       1,
	}

	items, lines := s.buildItems(proposal.ID, input.Items)
	totals := pricing.Calculate(lines, pricing.Discount{Type: input.DiscountType, Value: input.DiscountValue}, input.TaxPercent)
	proposal.SubTotal = totals.SubTotal
	proposal.DiscountAmount = totals.DiscountAmount
	proposal.TaxAmount = totals.TaxAmount
	proposal.Total = totals.Total

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}
	if err := s.proposalItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.proposalRepo.GetWithItems(ctx, proposal.ID)
}

// GetProposal retrieves a proposal with its items
func (s *ProposalService) GetProposal(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	proposal, err := s.proposalRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NewNotFoundError("Proposal")
	}
	return proposal, nil
}

// ListProposalsInput represents the input for listing proposals
type ListProposalsInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ProposalStatus
	CustomerID *uuid.UUID
}

// ListProposals lists proposals with filtering
func (s *ProposalService) ListProposals(ctx context.Context, input *ListProposalsInput) (*pagination.PaginatedResult[entity.Proposal], error) {
	params := &repository.ProposalFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		CustomerID: input.CustomerID,
	}

	proposals, total, err := s.proposalRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(proposals, pag), nil
}

// UpdateProposalInput represents the input for updating a draft proposal
type UpdateProposalInput struct {
	ID            uuid.UUID
	Version       int
	CustomerID    *uuid.UUID
	Title         string
	Description   *string
	DiscountType  enum.DiscountType
	DiscountValue decimal.Decimal
	TaxPercent    decimal.Decimal
	Notes         *string
	Terms         *string
	ValidUntil    *time.Time
	Template      enum.ProposalTemplate
	Items         []ProposalItemInput
}

// UpdateProposal updates a draft proposal, replacing its item list
func (s *ProposalService) UpdateProposal(ctx context.Context, input *UpdateProposalInput) (*entity.Proposal, error) {
	if err := validateProposalItems(input.Items); err != nil {
		return nil, err
	}

	proposal, err := s.proposalRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NewNotFoundError("Proposal")
	}
	if proposal.Status != enum.ProposalStatusDraft {
		return nil, apperror.NewIneligibleError("Only draft proposals can be edited")
	}
	if input.Version != proposal.Version {
		return nil, apperror.ErrVersionConflict
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		proposal.CustomerID = &customer.ID
		proposal.CustomerName = customer.Name
		proposal.CustomerEmail = customer.Email
	}

	items, lines := s.buildItems(proposal.ID, input.Items)
	totals := pricing.Calculate(lines, pricing.Discount{Type: input.DiscountType, Value: input.DiscountValue}, input.TaxPercent)

	proposal.Title = input.Title
	proposal.Description = input.Description
	proposal.DiscountType = input.DiscountType
	proposal.DiscountValue = input.DiscountValue
	proposal.TaxPercent = input.TaxPercent
	proposal.Notes = input.Notes
	proposal.Terms = input.Terms
	proposal.Template = input.Template
	if input.ValidUntil != nil {
		proposal.ValidUntil = *input.ValidUntil
	}
	proposal.SubTotal = totals.SubTotal
	proposal.DiscountAmount = totals.DiscountAmount
	proposal.TaxAmount = totals.TaxAmount
	proposal.Total = totals.Total
	proposal.Version = input.Version + 1

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}

	if err := s.proposalItemRepo.DeleteByProposalID(ctx, proposal.ID); err != nil {
		return nil, err
	}
	if err := s.proposalItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return s.proposalRepo.GetWithItems(ctx, proposal.ID)
}

// DeleteProposal deletes a draft proposal
func (s *ProposalService) DeleteProposal(ctx context.Context, id uuid.UUID) error {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if proposal == nil {
		return apperror.NewNotFoundError("Proposal")
	}
	if proposal.Status != enum.ProposalStatusDraft {
		return apperror.NewIneligibleError("Only draft proposals can be deleted")
	}
	return s.proposalRepo.Delete(ctx, id)
}

// SendProposal moves a draft to Sent and emails the recipient a public link
func (s *ProposalService) SendProposal(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, apperror.NewNotFoundError("Proposal")
	}
	if proposal.Status != enum.ProposalStatusDraft {
		return nil, apperror.NewIneligibleError("Only draft proposals can be sent")
	}

	now := s.now()
	proposal.Status = enum.ProposalStatusSent
	proposal.SentAt = &now

	ok, err := s.proposalRepo.UpdateVersioned(ctx, proposal, proposal.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrVersionConflict
	}

	if err := s.mailer.SendProposalEmail(proposal.CustomerEmail, proposal.CustomerName, proposal.Title, proposal.PublicToken); err != nil {
		return nil, apperror.NewAppError(502, "Proposal was marked sent but the email could not be delivered")
	}

	return s.proposalRepo.GetWithItems(ctx, id)
}

// GetByPublicToken retrieves a sent proposal for the public viewing page.
// Draft proposals are not reachable through their token.
func (s *ProposalService) GetByPublicToken(ctx context.Context, token string) (*entity.Proposal, error) {
	proposal, err := s.proposalRepo.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if proposal == nil || proposal.Status == enum.ProposalStatusDraft {
		return nil, apperror.NewNotFoundError("Proposal")
	}
	return proposal, nil
}

// MarkViewed records the first open of the public page: Sent becomes Viewed.
// Later statuses are left untouched.
func (s *ProposalService) MarkViewed(ctx context.Context, token string) (*entity.Proposal, error) {
	proposal, err := s.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if proposal.Status != enum.ProposalStatusSent {
		return proposal, nil
	}

	now := s.now()
	proposal.Status = enum.ProposalStatusViewed
	proposal.ViewedAt = &now

	ok, err := s.proposalRepo.UpdateVersioned(ctx, proposal, proposal.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Another request already advanced the proposal; re-read and report it
		return s.GetByPublicToken(ctx, token)
	}
	return proposal, nil
}

func (s *ProposalService) checkRespondable(proposal *entity.Proposal) error {
	if proposal.IsExpired(s.now()) {
		return apperror.NewIneligibleError("Proposal has expired")
	}
	if !proposal.Status.IsOpenForResponse() {
		return apperror.NewIneligibleError("Proposal is no longer open for a response")
	}
	return nil
}

// AcceptProposal accepts via the public token, generates an invoice from the
// proposal and signals the provisioner
func (s *ProposalService) AcceptProposal(ctx context.Context, token string) (*entity.Proposal, *entity.Invoice, error) {
	proposal, err := s.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkRespondable(proposal); err != nil {
		return nil, nil, err
	}

	now := s.now()
	proposal.Status = enum.ProposalStatusAccepted
	proposal.RespondedAt = &now

	ok, err := s.proposalRepo.UpdateVersioned(ctx, proposal, proposal.Version)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, apperror.ErrVersionConflict
	}

	invoice, err := s.createInvoiceFromProposal(ctx, proposal)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.invoiceItemRepo.GetByInvoiceID(ctx, invoice.ID)
	if err != nil {
		return nil, nil, err
	}
	if s.provisioner != nil {
		if err := s.provisioner.ProvisionInvoice(ctx, invoice, items); err != nil {
			return nil, nil, err
		}
	}

	return proposal, invoice, nil
}

// RejectProposal declines via the public token, recording an optional reason
func (s *ProposalService) RejectProposal(ctx context.Context, token string, reason *string) (*entity.Proposal, error) {
	proposal, err := s.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.checkRespondable(proposal); err != nil {
		return nil, err
	}

	now := s.now()
	proposal.Status = enum.ProposalStatusRejected
	proposal.RespondedAt = &now
	proposal.RejectReason = reason

	ok, err := s.proposalRepo.UpdateVersioned(ctx, proposal, proposal.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.ErrVersionConflict
	}

	return proposal, nil
}

func (s *ProposalService) createInvoiceFromProposal(ctx context.Context, proposal *entity.Proposal) (*entity.Invoice, error) {
	nextNum, err := s.invoiceRepo.GetNextSequenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	dueDays := 14
	if billing, err := s.billingRepo.Get(ctx); err == nil && billing != nil && billing.InvoiceDueDays > 0 {
		dueDays = billing.InvoiceDueDays
	}

	now := s.now()
	invoice := &entity.Invoice{
		ID:             uuid.New(),
		CustomerID:     proposal.CustomerID,
		Number:         utils.FormatSequenceNumber("INV", nextNum),
		Source:         entity.InvoiceSourceProposal,
		SourceID:       &proposal.ID,
		BilledToName:   proposal.CustomerName,
		BilledToEmail:  proposal.CustomerEmail,
		DiscountType:   proposal.DiscountType,
		DiscountValue:  proposal.DiscountValue,
		TaxPercent:     proposal.TaxPercent,
		SubTotal:       proposal.SubTotal,
		DiscountAmount: proposal.DiscountAmount,
		TaxAmount:      proposal.TaxAmount,
		Total:          proposal.Total,
		Status:         enum.InvoiceStatusUnpaid,
		IssueDate:      now,
		DueDate:        now.AddDate(0, 0, dueDays),
	}

	if proposal.CustomerID != nil {
		if customer, err := s.customerRepo.GetByID(ctx, *proposal.CustomerID); err == nil && customer != nil {
			invoice.BilledToCompany = customer.Company
			invoice.BilledToAddress = customer.Address
			invoice.BilledToPhone = customer.Phone
		}
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	proposalItems, err := s.proposalItemRepo.GetByProposalID(ctx, proposal.ID)
	if err != nil {
		return nil, err
	}

	items := make([]entity.InvoiceItem, 0, len(proposalItems))
	for _, pi := range proposalItems {
		items = append(items, entity.InvoiceItem{
			InvoiceID:   invoice.ID,
			ProductID:   pi.ProductID,
			Name:        pi.Name,
			Description: pi.Description,
			Quantity:    pi.Quantity,
			UnitPrice:   pi.UnitPrice,
			LineTotal:   pi.LineTotal,
			SortOrder:   pi.SortOrder,
		})
	}
	if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	return invoice, nil
}

// RenderPDF renders the proposal document using its stored template
func (s *ProposalService) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	proposal, err := s.GetProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderProposalPDF(ctx, proposal)
}

// RenderPublicPDF renders the proposal document for the public token page
func (s *ProposalService) RenderPublicPDF(ctx context.Context, token string) ([]byte, error) {
	proposal, err := s.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.renderProposalPDF(ctx, proposal)
}

func (s *ProposalService) renderProposalPDF(ctx context.Context, proposal *entity.Proposal) ([]byte, error) {
	doc := pdfgen.Document{
		Kind:        "PROPOSAL",
		Number:      proposal.Number,
		Title:       proposal.Title,
		Recipient:   pdfgen.Party{Name: proposal.CustomerName, Email: proposal.CustomerEmail},
		SubTotal:    proposal.SubTotal,
		TaxPercent:  proposal.TaxPercent,
		TaxAmount:   proposal.TaxAmount,
		Total:       proposal.Total,
		IssueDate:   proposal.CreatedAt,
		ExpiryLabel: "Valid until",
		Template:    pdfgen.Template(proposal.Template.String()),
	}
	doc.DiscountAmount = proposal.DiscountAmount
	validUntil := proposal.ValidUntil
	doc.ExpiryDate = &validUntil
	if proposal.Notes != nil {
		doc.Notes = *proposal.Notes
	}
	if proposal.Terms != nil {
		doc.Terms = *proposal.Terms
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
	}

	for _, item := range proposal.Items {
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

	data, err := s.renderer.Proposal(doc)
	if err != nil {
		return nil, apperror.NewAppError(500, "Failed to render proposal PDF")
	}
	return data, nil
}
