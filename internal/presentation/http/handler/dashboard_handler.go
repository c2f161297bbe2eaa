package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles back office analytics HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if s := c.Query(name); s != "" {
		if parsed, err := parsePositiveInt(s); err == nil {
			return parsed
		}
	}
	return fallback
}

// Stats handles the dashboard headline counters
// @Summary Dashboard Stats
// @Description Get headline counts and revenue figures for the back office
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /admin/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// MonthlyRevenue handles the revenue-per-month series
// @Summary Monthly Revenue
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param months query int false "Number of months" default(12)
// @Success 200 {object} response.APIResponse
// @Router /admin/dashboard/revenue [get]
func (h *DashboardHandler) MonthlyRevenue(c *gin.Context) {
	result, err := h.dashboardService.GetMonthlyRevenue(c.Request.Context(), queryInt(c, "months", 12))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Monthly revenue retrieved successfully", result)
}

// TopProducts handles the best selling products ranking
// @Summary Top Products
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of products" default(5)
// @Success 200 {object} response.APIResponse
// @Router /admin/dashboard/top-products [get]
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	result, err := h.dashboardService.GetTopProducts(c.Request.Context(), queryInt(c, "limit", 5))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Top products retrieved successfully", result)
}

// TopCustomers handles the highest revenue customers ranking
// @Summary Top Customers
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of customers" default(5)
// @Success 200 {object} response.APIResponse
// @Router /admin/dashboard/top-customers [get]
func (h *DashboardHandler) TopCustomers(c *gin.Context) {
	result, err := h.dashboardService.GetTopCustomers(c.Request.Context(), queryInt(c, "limit", 5))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Top customers retrieved successfully", result)
}

// RecentActivity handles the recent orders, tickets and proposals feed
// @Summary Recent Activity
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of entries per feed" default(10)
// @Success 200 {object} response.APIResponse
// @Router /admin/dashboard/activity [get]
func (h *DashboardHandler) RecentActivity(c *gin.Context) {
	result, err := h.dashboardService.GetRecentActivity(c.Request.Context(), queryInt(c, "limit", 10))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Recent activity retrieved successfully", result)
}
