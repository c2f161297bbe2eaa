package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// ServiceHandler handles provisioned hosting service HTTP requests
type ServiceHandler struct {
	hostingService *service.HostingService
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(hostingService *service.HostingService) *ServiceHandler {
	return &ServiceHandler{hostingService: hostingService}
}

// ServiceRequest represents the create/update service request body
type ServiceRequest struct {
	CustomerID      string  `json:"customer_id" binding:"required"`
	ProductID       *string `json:"product_id"`
	Label           string  `json:"label" binding:"required"`
	DomainName      *string `json:"domain_name"`
	Status          int     `json:"status"`
	BillingCycle    int     `json:"billing_cycle"`
	RecurringAmount string  `json:"recurring_amount"`
	NextDueAt       *string `json:"next_due_at"`
}

func (h *ServiceHandler) bindInput(c *gin.Context) (*service.ServiceInput, bool) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return nil, false
	}
	productID, err := parseOptionalUUID(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return nil, false
	}
	amount, err := parseDecimal(req.RecurringAmount)
	if err != nil {
		response.BadRequest(c, "Invalid recurring amount")
		return nil, false
	}

	var nextDueAt *time.Time
	if req.NextDueAt != nil && *req.NextDueAt != "" {
		parsed, err := time.Parse("2006-01-02", *req.NextDueAt)
		if err != nil {
			response.BadRequest(c, "Invalid next due date. Use YYYY-MM-DD")
			return nil, false
		}
		nextDueAt = &parsed
	}

	return &service.ServiceInput{
		CustomerID:      customerID,
		ProductID:       productID,
		Label:           req.Label,
		DomainName:      req.DomainName,
		Status:          enum.ServiceStatus(req.Status),
		BillingCycle:    enum.BillingCycle(req.BillingCycle),
		RecurringAmount: amount,
		NextDueAt:       nextDueAt,
	}, true
}

// ListOwn handles listing the current user's services
// @Summary List Own Services
// @Description List the hosting services linked to the caller's customer record
// @Tags services
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /services [get]
func (h *ServiceHandler) ListOwn(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	services, err := h.hostingService.ListOwnServices(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Services retrieved successfully", services)
}

// List handles the admin service listing
// @Summary List Services
// @Description Get all services with pagination and filtering
// @Tags services
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	input := &service.ListServicesInput{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.ServiceStatus(parsed)
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

	result, err := h.hostingService.ListServices(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Services retrieved successfully", result)
}

// Get handles getting a single service
// @Summary Get Service
// @Tags services
// @Security BearerAuth
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.hostingService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service retrieved successfully", svc)
}

// Create handles creating a service
// @Summary Create Service
// @Tags services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ServiceRequest true "Service data"
// @Success 201 {object} response.APIResponse
// @Router /admin/services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	svc, err := h.hostingService.CreateService(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Service created successfully", svc)
}

// Update handles updating a service
// @Summary Update Service
// @Tags services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body ServiceRequest true "Service data"
// @Success 200 {object} response.APIResponse
// @Router /admin/services/{id} [put]
func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	svc, err := h.hostingService.UpdateService(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service updated successfully", svc)
}

// Delete handles deleting a service
// @Summary Delete Service
// @Tags services
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204
// @Router /admin/services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.hostingService.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
