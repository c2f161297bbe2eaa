package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// ProposalHandler handles proposal lifecycle HTTP requests
type ProposalHandler struct {
	proposalService *service.ProposalService
}

// NewProposalHandler creates a new proposal handler
func NewProposalHandler(proposalService *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService}
}

// ProposalItemRequest represents a line item in the request
type ProposalItemRequest struct {
	ProductID   *string `json:"product_id"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	UnitPrice   string  `json:"unit_price" binding:"required"`
}

// ProposalRequest represents the create/update proposal request body
type ProposalRequest struct {
	CustomerID    *string               `json:"customer_id"`
	NewCustomer   *NewCustomerRequest   `json:"new_customer"`
	Title         string                `json:"title" binding:"required"`
	Description   *string               `json:"description"`
	DiscountType  int                   `json:"discount_type"`
	DiscountValue string                `json:"discount_value"`
	TaxPercent    string                `json:"tax_percent"`
	Notes         *string               `json:"notes"`
	Terms         *string               `json:"terms"`
	ValidUntil    *string               `json:"valid_until"`
	Template      string                `json:"template"`
	Version       int                   `json:"version"`
	Items         []ProposalItemRequest `json:"items" binding:"required,min=1"`
}

// NewCustomerRequest carries inline recipient fields
type NewCustomerRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company"`
}

// proposalPayload augments the entity with its derived expiry state
func proposalPayload(p *entity.Proposal) gin.H {
	return gin.H{
		"proposal":   p,
		"is_expired": p.IsExpired(time.Now()),
	}
}

func (h *ProposalHandler) parseItems(c *gin.Context, reqs []ProposalItemRequest) ([]service.ProposalItemInput, bool) {
	items := make([]service.ProposalItemInput, len(reqs))
	for i, item := range reqs {
		productID, err := parseOptionalUUID(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return nil, false
		}
		unitPrice, err := parseDecimal(item.UnitPrice)
		if err != nil {
			response.BadRequest(c, "Invalid unit price")
			return nil, false
		}
		items[i] = service.ProposalItemInput{
			ProductID:   productID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
		}
	}
	return items, true
}

func parseValidUntil(c *gin.Context, s *string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", *s)
	if err != nil {
		response.BadRequest(c, "Invalid valid_until date. Use YYYY-MM-DD")
		return nil, false
	}
	return &parsed, true
}

// List handles listing proposals
// @Summary List Proposals
// @Description Get all proposals with pagination and filtering
// @Tags proposals
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	input := &service.ListProposalsInput{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.ProposalStatus(parsed)
			input.Status = &st
		}
	}
	if cu := c.Query("customer_id"); cu != "" {
		parsed, err := uuid.Parse(cu)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &parsed
	}

	result, err := h.proposalService.ListProposals(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Proposals retrieved successfully", result)
}

// Get handles getting a single proposal
// @Summary Get Proposal
// @Tags proposals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/proposals/{id} [get]
func (h *ProposalHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Proposal retrieved successfully", proposalPayload(proposal))
}

// Create handles creating a draft proposal
// @Summary Create Proposal
// @Tags proposals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProposalRequest true "Proposal data"
// @Success 201 {object} response.APIResponse
// @Router /admin/proposals [post]
func (h *ProposalHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	discountValue, err := parseDecimal(req.DiscountValue)
	if err != nil {
		response.BadRequest(c, "Invalid discount value")
		return
	}
	taxPercent, err := parseDecimal(req.TaxPercent)
	if err != nil {
		response.BadRequest(c, "Invalid tax percent")
		return
	}
	validUntil, ok := parseValidUntil(c, req.ValidUntil)
	if !ok {
		return
	}
	items, ok := h.parseItems(c, req.Items)
	if !ok {
		return
	}

	input := &service.CreateProposalInput{
		UserID:        *userID,
		CustomerID:    customerID,
		Title:         req.Title,
		Description:   req.Description,
		DiscountType:  enum.DiscountType(req.DiscountType),
		DiscountValue: discountValue,
		TaxPercent:    taxPercent,
		Notes:         req.Notes,
		Terms:         req.Terms,
		ValidUntil:    validUntil,
		Template:      enum.ParseProposalTemplate(req.Template),
		Items:         items,
	}
	if req.NewCustomer != nil {
		input.NewCustomer = &service.NewCustomerInput{
			Name:    req.NewCustomer.Name,
			Email:   req.NewCustomer.Email,
			Company: req.NewCustomer.Company,
		}
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Proposal created successfully", proposalPayload(proposal))
}

// Update handles updating a draft proposal
// @Summary Update Proposal
// @Description Update a draft proposal; the request version must match
// @Tags proposals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proposal ID"
// @Param request body ProposalRequest true "Proposal data"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /admin/proposals/{id} [put]
func (h *ProposalHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	var req ProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	discountValue, err := parseDecimal(req.DiscountValue)
	if err != nil {
		response.BadRequest(c, "Invalid discount value")
		return
	}
	taxPercent, err := parseDecimal(req.TaxPercent)
	if err != nil {
		response.BadRequest(c, "Invalid tax percent")
		return
	}
	validUntil, ok := parseValidUntil(c, req.ValidUntil)
	if !ok {
		return
	}
	items, ok := h.parseItems(c, req.Items)
	if !ok {
		return
	}

	proposal, err := h.proposalService.UpdateProposal(c.Request.Context(), &service.UpdateProposalInput{
		ID:            id,
		Version:       req.Version,
		CustomerID:    customerID,
		Title:         req.Title,
		Description:   req.Description,
		DiscountType:  enum.DiscountType(req.DiscountType),
		DiscountValue: discountValue,
		TaxPercent:    taxPercent,
		Notes:         req.Notes,
		Terms:         req.Terms,
		ValidUntil:    validUntil,
		Template:      enum.ParseProposalTemplate(req.Template),
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Proposal updated successfully", proposalPayload(proposal))
}

// Delete handles deleting a draft proposal
// @Summary Delete Proposal
// @Tags proposals
// @Security BearerAuth
// @Param id path string true "Proposal ID"
// @Success 204
// @Router /admin/proposals/{id} [delete]
func (h *ProposalHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	if err := h.proposalService.DeleteProposal(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Send handles sending a draft proposal to its recipient
// @Summary Send Proposal
// @Description Mark the proposal sent and email its public link
// @Tags proposals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Proposal ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/proposals/{id}/send [post]
func (h *ProposalHandler) Send(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	proposal, err := h.proposalService.SendProposal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Proposal sent successfully", proposalPayload(proposal))
}

// DownloadPDF handles rendering the proposal document
// @Summary Download Proposal PDF
// @Tags proposals
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Proposal ID"
// @Success 200
// @Router /admin/proposals/{id}/pdf [get]
func (h *ProposalHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proposal ID")
		return
	}

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.proposalService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.PDF(c, proposal.Number+".pdf", data)
}

// GetPublic handles the public proposal page. The first open of a sent
// proposal records it as viewed.
// @Summary Public Proposal
// @Tags public
// @Produce json
// @Param token path string true "Public token"
// @Success 200 {object} response.APIResponse
// @Router /public/proposals/{token} [get]
func (h *ProposalHandler) GetPublic(c *gin.Context) {
	proposal, err := h.proposalService.MarkViewed(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Proposal retrieved successfully", proposalPayload(proposal))
}

// Accept handles accepting a proposal via its public token
// @Summary Accept Proposal
// @Description Accept the proposal and generate its invoice
// @Tags public
// @Produce json
// @Param token path string true "Public token"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /public/proposals/{token}/accept [post]
func (h *ProposalHandler) Accept(c *gin.Context) {
	proposal, invoice, err := h.proposalService.AcceptProposal(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Proposal accepted", gin.H{
		"proposal": proposal,
		"invoice":  invoice,
	})
}

// Reject handles declining a proposal via its public token
// @Summary Reject Proposal
// @Tags public
// @Accept json
// @Produce json
// @Param token path string true "Public token"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /public/proposals/{token}/reject [post]
func (h *ProposalHandler) Reject(c *gin.Context) {
	var req struct {
		Reason *string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, "Invalid request body")
		return
	}

	proposal, err := h.proposalService.RejectProposal(c.Request.Context(), c.Param("token"), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Proposal rejected", proposalPayload(proposal))
}

// DownloadPublicPDF handles rendering the proposal document from the public page
// @Summary Public Proposal PDF
// @Tags public
// @Produce application/pdf
// @Param token path string true "Public token"
// @Success 200
// @Router /public/proposals/{token}/pdf [get]
func (h *ProposalHandler) DownloadPublicPDF(c *gin.Context) {
	token := c.Param("token")
	proposal, err := h.proposalService.GetByPublicToken(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.proposalService.RenderPublicPDF(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.PDF(c, proposal.Number+".pdf", data)
}
