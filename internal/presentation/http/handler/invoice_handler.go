package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/domain/entity"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// InvoiceItemRequest represents a line item in the request
type InvoiceItemRequest struct {
	ProductID   *string `json:"product_id"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	UnitPrice   string  `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest represents the manual invoice request body
type CreateInvoiceRequest struct {
	CustomerID    string               `json:"customer_id" binding:"required"`
	DiscountType  int                  `json:"discount_type"`
	DiscountValue string               `json:"discount_value"`
	TaxPercent    string               `json:"tax_percent"`
	Notes         *string              `json:"notes"`
	DueDate       *string              `json:"due_date"`
	Items         []InvoiceItemRequest `json:"items" binding:"required,min=1"`
}

// List handles listing invoices
// @Summary List Invoices
// @Description Get all invoices with pagination and filtering
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	input := &service.ListInvoicesInput{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.InvoiceStatus(parsed)
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

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice
// @Summary Get Invoice
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Create handles creating a manual draft invoice
// @Summary Create Invoice
// @Tags invoices
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Invoice data"
// @Success 201 {object} response.APIResponse
// @Router /admin/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
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

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			response.BadRequest(c, "Invalid due date. Use YYYY-MM-DD")
			return
		}
		dueDate = &parsed
	}

	items := make([]service.InvoiceItemInput, len(req.Items))
	for i, item := range req.Items {
		productID, err := parseOptionalUUID(item.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		unitPrice, err := parseDecimal(item.UnitPrice)
		if err != nil {
			response.BadRequest(c, "Invalid unit price")
			return
		}
		items[i] = service.InvoiceItemInput{
			ProductID:   productID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
		}
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		CustomerID:    customerID,
		DiscountType:  enum.DiscountType(req.DiscountType),
		DiscountValue: discountValue,
		TaxPercent:    taxPercent,
		Notes:         req.Notes,
		DueDate:       dueDate,
		Items:         items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Invoice created successfully", invoice)
}

// Issue handles issuing a draft invoice
// @Summary Issue Invoice
// @Description Move a draft invoice to unpaid and email the customer
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/invoices/{id}/issue [post]
func (h *InvoiceHandler) Issue(c *gin.Context) {
	h.transition(c, h.invoiceService.IssueInvoice, "Invoice issued successfully")
}

// MarkPaid handles recording payment of an invoice
// @Summary Mark Invoice Paid
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.invoiceService.MarkPaid, "Invoice marked paid")
}

// Cancel handles cancelling an invoice
// @Summary Cancel Invoice
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	h.transition(c, h.invoiceService.CancelInvoice, "Invoice cancelled")
}

// Refund handles refunding a paid invoice
// @Summary Refund Invoice
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/invoices/{id}/refund [post]
func (h *InvoiceHandler) Refund(c *gin.Context) {
	h.transition(c, h.invoiceService.RefundInvoice, "Invoice refunded")
}

func (h *InvoiceHandler) transition(c *gin.Context, op func(context.Context, uuid.UUID) (*entity.Invoice, error), message string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := op(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, invoice)
}

// Delete handles deleting a draft invoice
// @Summary Delete Invoice
// @Tags invoices
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 204
// @Router /admin/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DownloadPDF handles rendering the invoice document
// @Summary Download Invoice PDF
// @Description Render the invoice, optionally overriding the template
// @Tags invoices
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Param template query string false "Template name"
// @Success 200
// @Router /admin/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.invoiceService.RenderPDF(c.Request.Context(), id, c.Query("template"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.PDF(c, invoice.Number+".pdf", data)
}
