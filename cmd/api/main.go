package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"tokodigital_backend/internal/controller"
	"tokodigital_backend/internal/middleware"
	"tokodigital_backend/internal/model"
	"tokodigital_backend/pkg/config"
	"tokodigital_backend/pkg/cron"
	"tokodigital_backend/pkg/database"
	"tokodigital_backend/pkg/email"
	"tokodigital_backend/pkg/seed"
	"tokodigital_backend/pkg/subscription"
	"tokodigital_backend/pkg/utils/jwt"
	"tokodigital_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App, limiter *middleware.RateLimiter) {
	api := app.Group("/api", limiter.Handler())

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/logout", controller.Logout)
	auth.Post("/forgot-password", controller.ForgotPassword)
	auth.Put("/reset-password/:token", controller.ResetPassword)
	auth.Get("/verify-email/:token", controller.VerifyEmail)

	authProtected := auth.Group("/", middleware.Protect())
	authProtected.Get("/me", controller.GetMe)
	authProtected.Put("/profile", controller.UpdateProfile)
	authProtected.Put("/password", controller.UpdatePassword)

	// Public storefront routes
	public := api.Group("/public")
	public.Get("/stores/:subdomain", controller.GetStoreBySubdomain)
	public.Get("/stores/:storeId/products", controller.ListStoreProducts)
	public.Get("/products/:productId", controller.GetProduct)
	public.Post("/orders", controller.CreateOrder)
	public.Post("/chats", controller.CreateCustomerMessage)

	// WhatsApp deep-link routes
	wa := api.Group("/whatsapp")
	wa.Post("/link", controller.GenerateWhatsAppLink)
	wa.Post("/checkout", controller.GenerateCheckoutLink)

	// Protected store routes
	stores := api.Group("/stores", middleware.Protect())
	stores.Get("/", controller.ListStores)
	stores.Get("/:storeId", middleware.CheckStoreOwnership(), controller.GetStore)
	stores.Put("/:storeId", middleware.CheckStoreOwnership(), controller.UpdateStore)
	stores.Post("/:storeId/logo", middleware.CheckStoreOwnership(), controller.UploadStoreLogo)

	// Protected product routes with subscription checks
	products := stores.Group("/:storeId/products", middleware.CheckStoreOwnership())
	products.Post("/", middleware.CheckProductLimit(), controller.CreateProduct)
	products.Put("/:productId", controller.UpdateProduct)
	products.Delete("/:productId", controller.DeleteProduct)
	products.Post("/:productId/images", controller.UploadProductImage)

	// Protected order routes
	orders := stores.Group("/:storeId/orders", middleware.CheckStoreOwnership())
	orders.Get("/", controller.ListStoreOrders)
	orders.Put("/:orderId/status", controller.UpdateOrderStatus)

	// Protected chat routes
	chats := stores.Group("/:storeId/chats", middleware.CheckStoreOwnership())
	chats.Get("/", controller.ListStoreChats)
	chats.Post("/:chatId/reply", middleware.CheckSubscriptionFeature(subscription.ChatSupport), controller.ReplyChat)
	chats.Put("/:chatId/read", controller.MarkChatRead)

	// Analytics, domain ve AI uçları feature bazlı kilitlidir
	stores.Get("/:storeId/analytics", middleware.CheckStoreOwnership(), controller.GetStoreAnalytics)

	domains := api.Group("/domains", middleware.Protect())
	domains.Get("/check/:domain", controller.CheckDomainAvailability)
	domains.Post("/connect",
		middleware.CheckStoreOwnership(),
		middleware.CheckSubscriptionFeature(subscription.CustomDomain),
		controller.ConnectCustomDomain)

	ai := api.Group("/ai", middleware.Protect())
	ai.Post("/landing-page",
		middleware.CheckStoreOwnership(),
		middleware.CheckSubscriptionFeature(subscription.AILandingPage),
		controller.GenerateLandingPage)

	// Admin routes
	admin := api.Group("/admin", middleware.Protect(), middleware.Authorize(model.RoleAdmin))
	admin.Get("/stores", controller.ListStores)

	// Subscription routes
	subscriptions := api.Group("/subscriptions")
	subscriptions.Get("/plans", controller.ListPlans)

	subProtected := subscriptions.Group("/", middleware.Protect())
	subProtected.Get("/my", controller.GetMySubscription)
	subProtected.Post("/create-checkout-session", controller.CreateCheckoutSession)
	subProtected.Post("/cancel", controller.CancelSubscription)

	// Stripe webhook
	api.Post("/webhook", controller.HandleStripeWebhook)
}

func main() {
	cfg := config.Load()

	if cfg.Email.ResendAPIKey != "" {
		if err := email.InitEmailService(cfg.Email.ResendAPIKey, cfg.Email.From); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY not set, email notifications disabled")
	}

	jwt.Init(cfg.JWT.Secret)
	storage.Init(cfg.Storage)
	controller.InitAuthController(cfg)
	controller.InitSubscriptionController(cfg)

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Store{},
		&model.Subscription{},
		&model.Product{},
		&model.Order{},
		&model.Chat{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		seed.SeedDemoData(database.GetDB())
	}

	cron.InitTrialExpiryCron()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	limiter := middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	setupRoutes(app, limiter)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
