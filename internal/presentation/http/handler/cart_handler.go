package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// CartHandler handles shopping cart HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get handles fetching the current user's cart
// @Summary Get Cart
// @Description Get the cart lines and running totals
// @Tags cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", cart)
}

// AddItem handles adding a line to the cart
// @Summary Add Cart Item
// @Description Add a product or custom line to the cart
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ProductID    *string `json:"product_id"`
		CustomName   string  `json:"custom_name"`
		CustomPrice  string  `json:"custom_price"`
		BillingCycle int     `json:"billing_cycle"`
		Quantity     int     `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	productID, err := parseOptionalUUID(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}
	customPrice, err := parseDecimal(req.CustomPrice)
	if err != nil {
		response.BadRequest(c, "Invalid custom price")
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), &service.AddItemInput{
		UserID:       *userID,
		ProductID:    productID,
		CustomName:   req.CustomName,
		CustomPrice:  customPrice,
		BillingCycle: enum.BillingCycle(req.BillingCycle),
		Quantity:     req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item added to cart", item)
}

// UpdateItem handles changing a cart line quantity
// @Summary Update Cart Item
// @Tags cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Cart item ID"
// @Success 200 {object} response.APIResponse
// @Router /cart/items/{id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart item ID")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.cartService.UpdateQuantity(c.Request.Context(), *userID, itemID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart item updated", item)
}

// RemoveItem handles removing a cart line
// @Summary Remove Cart Item
// @Tags cart
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Success 204
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid cart item ID")
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), *userID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Clear handles emptying the cart
// @Summary Clear Cart
// @Tags cart
// @Security BearerAuth
// @Success 204
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), *userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
