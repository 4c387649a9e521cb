package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/elitestore/storefront/internal/catalog"
	"github.com/elitestore/storefront/internal/config"
	"github.com/elitestore/storefront/internal/database"
	"github.com/elitestore/storefront/internal/handlers"
	"github.com/elitestore/storefront/internal/logging"
	"github.com/elitestore/storefront/internal/middleware"
	"github.com/elitestore/storefront/internal/routes"
	"github.com/elitestore/storefront/internal/services"
	"github.com/elitestore/storefront/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		dbLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Guest cart/wishlist persistence
	var sessionBackend storage.Backend
	if cfg.SessionStoragePath != "" {
		fileBackend, err := storage.NewFile(cfg.SessionStoragePath)
		if err != nil {
			slog.Error("session storage init failed", "path", cfg.SessionStoragePath, "error", err)
			os.Exit(1)
		}
		sessionBackend = fileBackend
	} else {
		sessionBackend = storage.NewMemory()
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	userService := services.NewUserService(database.DB)
	productService := services.NewProductService(database.DB)
	orderService := services.NewOrderService(database.DB)
	reviewService := services.NewReviewService(database.DB, productService)
	dashboardService := services.NewDashboardService(database.DB)
	settingsService := services.NewSettingsService(database.DB)
	paymentService := services.NewPaymentService(database.DB, orderService)

	// Seed default store settings
	slog.Info("seeding default store settings")
	settingsService.SeedDefaults()

	// Seed catalog from YAML when configured and the table is empty
	if cfg.CatalogSeedPath != "" {
		if err := catalog.Seed(database.DB, cfg.CatalogSeedPath); err != nil {
			slog.Error("catalog seed failed", "path", cfg.CatalogSeedPath, "error", err)
			os.Exit(1)
		}
	}

	// Handlers
	h := routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		User:      handlers.NewUserHandler(userService),
		Product:   handlers.NewProductHandler(productService),
		Order:     handlers.NewOrderHandler(orderService, userService),
		Review:    handlers.NewReviewHandler(reviewService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Settings:  handlers.NewSettingsHandler(settingsService),
		Webhook:   handlers.NewWebhookHandler(paymentService, cfg),
		Cart:      handlers.NewCartHandler(sessionBackend),
		Wishlist:  handlers.NewWishlistHandler(sessionBackend),
		Health:    handlers.NewHealthHandler(),
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
