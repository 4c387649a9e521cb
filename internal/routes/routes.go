package routes

import (
	"time"

	"github.com/elitestore/storefront/internal/config"
	"github.com/elitestore/storefront/internal/handlers"
	"github.com/elitestore/storefront/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Handlers bundles everything Setup mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Product   *handlers.ProductHandler
	Order     *handlers.OrderHandler
	Review    *handlers.ReviewHandler
	Dashboard *handlers.DashboardHandler
	Settings  *handlers.SettingsHandler
	Webhook   *handlers.WebhookHandler
	Cart      *handlers.CartHandler
	Wishlist  *handlers.WishlistHandler
	Health    *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health and public store config
	api.Get("/health", h.Health.Check)
	api.Get("/config", h.Settings.GetConfig)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), h.Auth.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), h.Auth.DeleteAccount)

	// Profile
	api.Get("/users/me", middleware.JWTProtected(cfg), h.User.GetProfile)
	api.Put("/users/me", middleware.JWTProtected(cfg), h.User.UpdateProfile)

	// Catalog — public browse/search, reviews readable by anyone
	api.Get("/products", h.Product.List)
	api.Get("/products/:id", h.Product.Get)
	api.Get("/products/:id/reviews", h.Review.ListByProduct)
	api.Post("/products/:id/reviews", middleware.JWTProtected(cfg), h.Review.Create)
	api.Post("/reviews/:id/helpful", middleware.JWTProtected(cfg), h.Review.MarkHelpful)

	// Orders — owner-scoped
	api.Get("/orders", middleware.JWTProtected(cfg), h.Order.ListMine)
	api.Post("/orders", middleware.JWTProtected(cfg), h.Order.Create)
	api.Get("/orders/:id", middleware.JWTProtected(cfg), h.Order.Get)

	// Guest cart and wishlist, keyed by X-Session-ID
	api.Get("/cart", h.Cart.Get)
	api.Post("/cart/items", h.Cart.AddItem)
	api.Put("/cart/items", h.Cart.UpdateItem)
	api.Delete("/cart/items", h.Cart.RemoveItem)
	api.Delete("/cart", h.Cart.Clear)

	api.Get("/wishlist", h.Wishlist.Get)
	api.Post("/wishlist/items", h.Wishlist.AddItem)
	api.Delete("/wishlist/items/:id", h.Wishlist.RemoveItem)
	api.Delete("/wishlist", h.Wishlist.Clear)

	// Payment provider webhook — shared-secret auth, no JWT
	api.Post("/webhooks/payment", h.Webhook.HandlePayment)

	// Admin panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/dashboard", h.Dashboard.Overview)
	admin.Get("/orders", h.Order.ListAll)
	admin.Put("/orders/:id/status", h.Order.UpdateStatus)
	admin.Get("/products/sku/:sku", h.Product.GetBySKU)
	admin.Delete("/reviews/:id", h.Review.Delete)
	admin.Put("/config/:key", h.Settings.SetKey)
	admin.Delete("/config/:key", h.Settings.DeleteKey)

	// Product management (admin)
	api.Post("/products", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), h.Product.Create)
	api.Put("/products/:id", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), h.Product.Update)
	api.Delete("/products/:id", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), h.Product.Delete)
}
