package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// OrderHandler handles order and checkout HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout converts the cart into an order with an unpaid invoice
// @Summary Checkout
// @Description Submit the cart as an order
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CouponCode string `json:"coupon_code"`
		TaxPercent string `json:"tax_percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	taxPercent, err := parseDecimal(req.TaxPercent)
	if err != nil {
		response.BadRequest(c, "Invalid tax percent")
		return
	}

	result, err := h.orderService.Checkout(c.Request.Context(), &service.CheckoutInput{
		UserID:     *userID,
		CouponCode: req.CouponCode,
		TaxPercent: taxPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order placed successfully", gin.H{
		"order":   result.Order,
		"invoice": result.Invoice,
	})
}

// ListOwn handles listing the current user's orders
// @Summary List Own Orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) ListOwn(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), &service.ListOrdersInput{
		Pagination: paginationFromQuery(c),
		UserID:     userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// GetOwn handles fetching one of the current user's orders
// @Summary Get Own Order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOwn(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if order.UserID != *userID {
		response.ErrorWithCode(c, 404, "Order not found")
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// List handles the admin order listing
// @Summary List Orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	input := &service.ListOrdersInput{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.OrderStatus(parsed)
			input.Status = &st
		}
	}
	if u := c.Query("user_id"); u != "" {
		parsed, err := uuid.Parse(u)
		if err != nil {
			response.BadRequest(c, "Invalid user ID")
			return
		}
		input.UserID = &parsed
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles fetching a single order
// @Summary Get Order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// Complete handles marking an order completed
// @Summary Complete Order
// @Description Complete a pending order and provision its lines
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CompleteOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order completed successfully", order)
}

// Cancel handles cancelling a pending order
// @Summary Cancel Order
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order cancelled successfully", order)
}
