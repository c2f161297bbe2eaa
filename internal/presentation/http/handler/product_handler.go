package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/request"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) bindProductInput(c *gin.Context) (*service.ProductInput, bool) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}

	groupID, err := parseOptionalUUID(req.GroupID)
	if err != nil {
		response.BadRequest(c, "Invalid group ID")
		return nil, false
	}
	monthly, err := parseDecimal(req.MonthlyPrice)
	if err != nil {
		response.BadRequest(c, "Invalid monthly price")
		return nil, false
	}
	annual, err := parseDecimal(req.AnnualPrice)
	if err != nil {
		response.BadRequest(c, "Invalid annual price")
		return nil, false
	}
	setupFee, err := parseDecimal(req.SetupFee)
	if err != nil {
		response.BadRequest(c, "Invalid setup fee")
		return nil, false
	}

	return &service.ProductInput{
		GroupID:      groupID,
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		MonthlyPrice: monthly,
		AnnualPrice:  annual,
		SetupFee:     setupFee,
		Active:       req.Active,
		SortOrder:    req.SortOrder,
	}, true
}

// Catalog handles the public storefront catalog listing
// @Summary Storefront Catalog
// @Description List active products, optionally scoped to a group
// @Tags catalog
// @Produce json
// @Param group query string false "Product group slug"
// @Success 200 {object} response.APIResponse
// @Router /catalog/products [get]
func (h *ProductHandler) Catalog(c *gin.Context) {
	products, err := h.productService.ListCatalog(c.Request.Context(), c.Query("group"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// CatalogProduct handles fetching one storefront product by slug
// @Summary Storefront Product
// @Description Get an active product by its slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} response.APIResponse
// @Router /catalog/products/{slug} [get]
func (h *ProductHandler) CatalogProduct(c *gin.Context) {
	product, err := h.productService.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// ListGroups handles listing product groups
// @Summary List Product Groups
// @Tags catalog
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /catalog/groups [get]
func (h *ProductHandler) ListGroups(c *gin.Context) {
	groups, err := h.productService.ListGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product groups retrieved successfully", groups)
}

// List handles the admin product listing
// @Summary List Products
// @Description Get all products with pagination and filtering
// @Tags products
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param group_id query string false "Group filter"
// @Param active query bool false "Active filter"
// @Success 200 {object} response.APIResponse
// @Router /admin/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	input := &service.ListProductsInput{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}

	if g := c.Query("group_id"); g != "" {
		groupID, err := uuid.Parse(g)
		if err != nil {
			response.BadRequest(c, "Invalid group ID")
			return
		}
		input.GroupID = &groupID
	}
	if a := c.Query("active"); a != "" {
		active := a == "true" || a == "1"
		input.Active = &active
	}

	result, err := h.productService.ListProducts(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Get handles getting a single product
// @Summary Get Product
// @Tags products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.APIResponse
// @Router /admin/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
// @Summary Create Product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ProductRequest true "Product data"
// @Success 201 {object} response.APIResponse
// @Router /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	input, ok := h.bindProductInput(c)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
// @Summary Update Product
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body request.ProductRequest true "Product data"
// @Success 200 {object} response.APIResponse
// @Router /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	input, ok := h.bindProductInput(c)
	if !ok {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
// @Summary Delete Product
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Router /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CreateGroup handles creating a product group
// @Summary Create Product Group
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ProductGroupRequest true "Group data"
// @Success 201 {object} response.APIResponse
// @Router /admin/product-groups [post]
func (h *ProductHandler) CreateGroup(c *gin.Context) {
	var req request.ProductGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	group, err := h.productService.CreateGroup(c.Request.Context(), &service.GroupInput{
		Name:      req.Name,
		Slug:      req.Slug,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product group created successfully", group)
}

// UpdateGroup handles updating a product group
// @Summary Update Product Group
// @Tags products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param request body request.ProductGroupRequest true "Group data"
// @Success 200 {object} response.APIResponse
// @Router /admin/product-groups/{id} [put]
func (h *ProductHandler) UpdateGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid group ID")
		return
	}

	var req request.ProductGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	group, err := h.productService.UpdateGroup(c.Request.Context(), id, &service.GroupInput{
		Name:      req.Name,
		Slug:      req.Slug,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product group updated successfully", group)
}

// DeleteGroup handles deleting a product group
// @Summary Delete Product Group
// @Tags products
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 204
// @Router /admin/product-groups/{id} [delete]
func (h *ProductHandler) DeleteGroup(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid group ID")
		return
	}

	if err := h.productService.DeleteGroup(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
