package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hostify/hostify-api/internal/config"
	domainRepo "github.com/hostify/hostify-api/internal/domain/repository"
	"github.com/hostify/hostify-api/internal/presentation/http/handler"
	"github.com/hostify/hostify-api/internal/presentation/http/middleware"
	"github.com/hostify/hostify-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Cart      *handler.CartHandler
	Order     *handler.OrderHandler
	Proposal  *handler.ProposalHandler
	Invoice   *handler.InvoiceHandler
	Customer  *handler.CustomerHandler
	Service   *handler.ServiceHandler
	Coupon    *handler.CouponHandler
	Ticket    *handler.TicketHandler
	Domain    *handler.DomainHandler
	Dashboard *handler.DashboardHandler
	Settings  *handler.SettingsHandler
	User      *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)
		registerPublicRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerAccountRoutes(protected, h, deps)
		registerAdminRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

// registerPublicRoutes registers the storefront routes that need no account:
// the catalog, domain search and token-addressed proposal pages.
func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers) {
	catalog := v1.Group("/catalog")
	{
		catalog.GET("", h.Product.Catalog)
		catalog.GET("/groups", h.Product.ListGroups)
		catalog.GET("/:slug", h.Product.CatalogProduct)
	}

	v1.GET("/domains/search", h.Domain.Search)

	proposals := v1.Group("/p/:token")
	{
		proposals.GET("", h.Proposal.GetPublic)
		proposals.POST("/accept", h.Proposal.Accept)
		proposals.POST("/reject", h.Proposal.Reject)
		proposals.GET("/pdf", h.Proposal.DownloadPublicPDF)
	}
}

// registerAccountRoutes registers the customer-facing routes scoped to the
// authenticated user.
func registerAccountRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Cart
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
	}

	// Coupon preview during checkout
	protected.GET("/coupons/validate", h.Coupon.Validate)

	// Checkout uses idempotency middleware to prevent duplicate orders
	protected.POST("/checkout", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Order.Checkout)

	// Own orders
	protected.GET("/orders", h.Order.ListOwn)
	protected.GET("/orders/:id", h.Order.GetOwn)

	// Own services
	protected.GET("/services", h.Service.ListOwn)

	// Own tickets
	tickets := protected.Group("/tickets")
	{
		tickets.GET("", h.Ticket.ListOwn)
		tickets.POST("", h.Ticket.Open)
		tickets.GET("/:id", h.Ticket.GetOwn)
		tickets.POST("/:id/replies", h.Ticket.ReplyOwn)
		tickets.POST("/:id/close", h.Ticket.CloseOwn)
	}
}

// registerAdminRoutes registers the back office. Every route requires a staff
// account plus the permission covering its resource.
func registerAdminRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole("admin", "staff"))

	// Dashboard
	dashboard := admin.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("view-dashboard"))
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
		dashboard.GET("/revenue", h.Dashboard.MonthlyRevenue)
		dashboard.GET("/top-products", h.Dashboard.TopProducts)
		dashboard.GET("/top-customers", h.Dashboard.TopCustomers)
		dashboard.GET("/activity", h.Dashboard.RecentActivity)
	}

	// Products and product groups
	products := admin.Group("/products")
	products.Use(middleware.RequirePermission("manage-products"))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
	groups := admin.Group("/product-groups")
	groups.Use(middleware.RequirePermission("manage-products"))
	{
		groups.POST("", h.Product.CreateGroup)
		groups.PUT("/:id", h.Product.UpdateGroup)
		groups.DELETE("/:id", h.Product.DeleteGroup)
	}

	// Orders
	orders := admin.Group("/orders")
	orders.Use(middleware.RequirePermission("manage-orders"))
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/complete", h.Order.Complete)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}

	// Proposals
	proposals := admin.Group("/proposals")
	proposals.Use(middleware.RequirePermission("manage-proposals"))
	{
		proposals.GET("", h.Proposal.List)
		proposals.POST("", h.Proposal.Create)
		proposals.GET("/:id", h.Proposal.Get)
		proposals.PUT("/:id", h.Proposal.Update)
		proposals.DELETE("/:id", h.Proposal.Delete)
		proposals.POST("/:id/send", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Proposal.Send)
		proposals.GET("/:id/pdf", h.Proposal.DownloadPDF)
	}

	// Invoices
	invoices := admin.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.POST("/:id/issue", h.Invoice.Issue)
		invoices.POST("/:id/pay", h.Invoice.MarkPaid)
		invoices.POST("/:id/cancel", h.Invoice.Cancel)
		invoices.POST("/:id/refund", h.Invoice.Refund)
		invoices.GET("/:id/pdf", h.Invoice.DownloadPDF)
	}

	// Customers
	customers := admin.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	// Services
	services := admin.Group("/services")
	services.Use(middleware.RequirePermission("manage-services"))
	{
		services.GET("", h.Service.List)
		services.POST("", h.Service.Create)
		services.GET("/:id", h.Service.Get)
		services.PUT("/:id", h.Service.Update)
		services.DELETE("/:id", h.Service.Delete)
	}

	// Coupons
	coupons := admin.Group("/coupons")
	coupons.Use(middleware.RequirePermission("manage-coupons"))
	{
		coupons.GET("", h.Coupon.List)
		coupons.POST("", h.Coupon.Create)
		coupons.GET("/:id", h.Coupon.Get)
		coupons.PUT("/:id", h.Coupon.Update)
		coupons.DELETE("/:id", h.Coupon.Delete)
	}

	// Tickets
	tickets := admin.Group("/tickets")
	tickets.Use(middleware.RequirePermission("manage-tickets"))
	{
		tickets.GET("", h.Ticket.List)
		tickets.GET("/:id", h.Ticket.Get)
		tickets.POST("/:id/replies", h.Ticket.Reply)
		tickets.POST("/:id/close", h.Ticket.Close)
	}

	// Settings
	settings := admin.Group("/settings")
	settings.Use(middleware.RequirePermission("manage-settings"))
	{
		settings.GET("/email", h.Settings.GetEmail)
		settings.PUT("/email", h.Settings.UpdateEmail)
		settings.POST("/email/test", h.Settings.SendTestEmail)
		settings.GET("/billing", h.Settings.GetBilling)
		settings.PUT("/billing", h.Settings.UpdateBilling)
	}

	// Users and roles
	users := admin.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
	roles := admin.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}
