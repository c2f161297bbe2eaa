package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/domain/enum"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// CouponHandler handles coupon HTTP requests
type CouponHandler struct {
	couponService *service.CouponService
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponService *service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// CouponRequest represents the create/update coupon request body
type CouponRequest struct {
	Code           string  `json:"code" binding:"required"`
	Description    *string `json:"description"`
	Type           int     `json:"type"`
	Value          string  `json:"value" binding:"required"`
	ValidFrom      *string `json:"valid_from"`
	ValidUntil     *string `json:"valid_until"`
	MaxRedemptions *int    `json:"max_redemptions"`
	Active         bool    `json:"active"`
}

func (h *CouponHandler) bindInput(c *gin.Context) (*service.CouponInput, bool) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}

	value, err := parseDecimal(req.Value)
	if err != nil {
		response.BadRequest(c, "Invalid coupon value")
		return nil, false
	}

	parseDate := func(s *string, label string) (*time.Time, bool) {
		if s == nil || *s == "" {
			return nil, true
		}
		parsed, err := time.Parse("2006-01-02", *s)
		if err != nil {
			response.BadRequest(c, "Invalid "+label+". Use YYYY-MM-DD")
			return nil, false
		}
		return &parsed, true
	}

	validFrom, ok := parseDate(req.ValidFrom, "valid from date")
	if !ok {
		return nil, false
	}
	validUntil, ok := parseDate(req.ValidUntil, "valid until date")
	if !ok {
		return nil, false
	}

	return &service.CouponInput{
		Code:           req.Code,
		Description:    req.Description,
		Type:           enum.DiscountType(req.Type),
		Value:          value,
		ValidFrom:      validFrom,
		ValidUntil:     validUntil,
		MaxRedemptions: req.MaxRedemptions,
		Active:         req.Active,
	}, true
}

// Validate handles checking a coupon against the caller's cart total
// @Summary Validate Coupon
// @Description Check a coupon code and preview the discount for a subtotal
// @Tags coupons
// @Security BearerAuth
// @Produce json
// @Param code query string true "Coupon code"
// @Param subtotal query string false "Cart subtotal"
// @Success 200 {object} response.APIResponse
// @Router /coupons/validate [get]
func (h *CouponHandler) Validate(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "Coupon code is required")
		return
	}
	subTotal, err := parseDecimal(c.Query("subtotal"))
	if err != nil {
		response.BadRequest(c, "Invalid subtotal")
		return
	}

	result, err := h.couponService.Validate(c.Request.Context(), code, subTotal)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Coupon is valid", result)
}

// List handles listing coupons
// @Summary List Coupons
// @Tags coupons
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param active query bool false "Active filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	input := &service.ListCouponsInput{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}
	if a := c.Query("active"); a != "" {
		active := a == "true" || a == "1"
		input.Active = &active
	}

	result, err := h.couponService.ListCoupons(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Coupons retrieved successfully", result)
}

// Get handles getting a single coupon
// @Summary Get Coupon
// @Tags coupons
// @Security BearerAuth
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/coupons/{id} [get]
func (h *CouponHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid coupon ID")
		return
	}

	coupon, err := h.couponService.GetCoupon(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Coupon retrieved successfully", coupon)
}

// Create handles creating a coupon
// @Summary Create Coupon
// @Tags coupons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CouponRequest true "Coupon data"
// @Success 201 {object} response.APIResponse
// @Router /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Coupon created successfully", coupon)
}

// Update handles updating a coupon
// @Summary Update Coupon
// @Tags coupons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param request body CouponRequest true "Coupon data"
// @Success 200 {object} response.APIResponse
// @Router /admin/coupons/{id} [put]
func (h *CouponHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid coupon ID")
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Coupon updated successfully", coupon)
}

// Delete handles deleting a coupon
// @Summary Delete Coupon
// @Tags coupons
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 204
// @Router /admin/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid coupon ID")
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
