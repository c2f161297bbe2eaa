package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// TicketHandler handles support ticket HTTP requests
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// OpenTicketRequest represents the open ticket request body
type OpenTicketRequest struct {
	ServiceID  *string `json:"service_id"`
	Subject    string  `json:"subject"`
	Department string  `json:"department"`
	Priority   int     `json:"priority"`
	Message    string  `json:"message"`
}

// ReplyRequest represents the ticket reply request body
type ReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// Open handles a customer opening a new ticket
// @Summary Open Ticket
// @Description Open a support ticket with its first message
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body OpenTicketRequest true "Ticket data"
// @Success 201 {object} response.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req OpenTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	serviceID, err := parseOptionalUUID(req.ServiceID)
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	ticket, err := h.ticketService.OpenTicket(c.Request.Context(), &service.OpenTicketInput{
		UserID:     *userID,
		ServiceID:  serviceID,
		Subject:    req.Subject,
		Department: req.Department,
		Priority:   enum.TicketPriority(req.Priority),
		Message:    req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Ticket opened successfully", ticket)
}

// ListOwn handles listing the current user's tickets
// @Summary List Own Tickets
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) ListOwn(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.ListTicketsInput{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		UserID:     userID,
	}
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.TicketStatus(parsed)
			input.Status = &st
		}
	}

	result, err := h.ticketService.ListTickets(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Tickets retrieved successfully", result)
}

// GetOwn handles fetching one of the current user's tickets with its thread
// @Summary Get Own Ticket
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetOwn(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.GetOwnTicket(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket retrieved successfully", ticket)
}

// ReplyOwn handles a customer replying to their own ticket
// @Summary Reply To Own Ticket
// @Description Append a customer message, reopening the ticket if closed
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body ReplyRequest true "Reply data"
// @Success 201 {object} response.APIResponse
// @Router /tickets/{id}/replies [post]
func (h *TicketHandler) ReplyOwn(c *gin.Context) {
	h.reply(c, false)
}

// CloseOwn handles a customer closing their own ticket
// @Summary Close Own Ticket
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.APIResponse
// @Router /tickets/{id}/close [post]
func (h *TicketHandler) CloseOwn(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.CloseOwnTicket(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket closed successfully", ticket)
}

// List handles the admin ticket listing
// @Summary List Tickets
// @Description Get all tickets with pagination and filtering
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Param priority query int false "Priority filter"
// @Param department query string false "Department filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	input := &service.ListTicketsInput{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
		Department: c.Query("department"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.TicketStatus(parsed)
			input.Status = &st
		}
	}
	if p := c.Query("priority"); p != "" {
		if parsed, err := parseNonNegativeInt(p); err == nil {
			pr := enum.TicketPriority(parsed)
			input.Priority = &pr
		}
	}

	result, err := h.ticketService.ListTickets(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Tickets retrieved successfully", result)
}

// Get handles fetching a single ticket with its thread
// @Summary Get Ticket
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/tickets/{id} [get]
func (h *TicketHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.GetTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket retrieved successfully", ticket)
}

// Reply handles a staff member replying to a ticket
// @Summary Reply To Ticket
// @Description Append a staff message, marking the ticket answered
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body ReplyRequest true "Reply data"
// @Success 201 {object} response.APIResponse
// @Router /admin/tickets/{id}/replies [post]
func (h *TicketHandler) Reply(c *gin.Context) {
	h.reply(c, true)
}

// Close handles a staff member closing a ticket
// @Summary Close Ticket
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/tickets/{id}/close [post]
func (h *TicketHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.CloseTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Ticket closed successfully", ticket)
}

func (h *TicketHandler) reply(c *gin.Context, isStaff bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	reply, err := h.ticketService.Reply(c.Request.Context(), &service.ReplyInput{
		TicketID: id,
		UserID:   *userID,
		IsStaff:  isStaff,
		Message:  req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Reply added successfully", reply)
}
