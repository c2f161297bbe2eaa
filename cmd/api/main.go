package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hostify/hostify-api/internal/application/service"
	"github.com/hostify/hostify-api/internal/config"
	"github.com/hostify/hostify-api/internal/infrastructure/database"
	"github.com/hostify/hostify-api/internal/infrastructure/repository"
	"github.com/hostify/hostify-api/internal/presentation/http/handler"
	"github.com/hostify/hostify-api/internal/presentation/http/routes"
	"github.com/hostify/hostify-api/pkg/domaincheck"
	"github.com/hostify/hostify-api/pkg/email"
	"github.com/hostify/hostify-api/pkg/oauth"
	"github.com/hostify/hostify-api/pkg/pdfgen"
	"github.com/hostify/hostify-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	productRepo := repository.NewProductRepository(db)
	productGroupRepo := repository.NewProductGroupRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	cartRepo := repository.NewCartRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	proposalItemRepo := repository.NewProposalItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	invoiceItemRepo := repository.NewInvoiceItemRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	ticketReplyRepo := repository.NewTicketReplyRepository(db)
	emailSettingsRepo := repository.NewEmailSettingsRepository(db)
	billingSettingsRepo := repository.NewBillingSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize email service from static config, then overlay the stored
	// SMTP settings if an admin has saved any
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUser,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromAddress,
		FrontendURL:  cfg.App.PublicURL,
	})
	if stored, err := emailSettingsRepo.Get(context.Background()); err == nil && stored != nil && stored.Enabled {
		emailService.UpdateConfig(email.EmailConfig{
			SMTPHost:     stored.SMTPHost,
			SMTPPort:     stored.SMTPPort,
			SMTPUsername: stored.SMTPUser,
			SMTPPassword: stored.SMTPPassword,
			FromName:     stored.FromName,
			FromEmail:    stored.FromAddress,
		})
	}

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
		FrontendURL:  cfg.App.PublicURL,
	})

	// Initialize PDF renderer and domain availability checker
	pdfRenderer := pdfgen.NewRenderer()
	var domainChecker service.DomainChecker
	if cfg.DomainCheck.Provider == "stub" {
		domainChecker = domaincheck.NewStubChecker()
	} else {
		domainChecker = domaincheck.NewRDAPChecker(cfg.DomainCheck.Timeout)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService)
	productService := service.NewProductService(productRepo, productGroupRepo)
	customerService := service.NewCustomerService(customerRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	couponService := service.NewCouponService(couponRepo)
	provisioner := service.NewAccountProvisioner(serviceRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, cartRepo, customerRepo, userRepo, invoiceRepo, invoiceItemRepo, billingSettingsRepo, couponService, provisioner)
	proposalService := service.NewProposalService(proposalRepo, proposalItemRepo, customerRepo, invoiceRepo, invoiceItemRepo, billingSettingsRepo, emailService, provisioner, pdfRenderer)
	invoiceService := service.NewInvoiceService(invoiceRepo, invoiceItemRepo, customerRepo, billingSettingsRepo, emailService, pdfRenderer)
	hostingService := service.NewHostingService(serviceRepo, customerRepo, productRepo)
	ticketService := service.NewTicketService(ticketRepo, ticketReplyRepo, userRepo, serviceRepo, emailService)
	settingsService := service.NewSettingsService(emailSettingsRepo, billingSettingsRepo, emailService)
	domainService := service.NewDomainService(domainChecker, cfg.DomainCheck.TLDs)
	dashboardService := service.NewDashboardService(customerRepo, serviceRepo, ticketRepo, invoiceRepo, proposalRepo, orderRepo, analyticsRepo)
	userService := service.NewUserService(userRepo, roleRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuthService),
		Product:   handler.NewProductHandler(productService),
		Cart:      handler.NewCartHandler(cartService),
		Order:     handler.NewOrderHandler(orderService),
		Proposal:  handler.NewProposalHandler(proposalService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Customer:  handler.NewCustomerHandler(customerService),
		Service:   handler.NewServiceHandler(hostingService),
		Coupon:    handler.NewCouponHandler(couponService),
		Ticket:    handler.NewTicketHandler(ticketService),
		Domain:    handler.NewDomainHandler(domainService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Settings:  handler.NewSettingsHandler(settingsService),
		User:      handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
