package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/orchid/internal/checkout"
	"github.com/example/orchid/internal/config"
	"github.com/example/orchid/internal/handlers"
	"github.com/example/orchid/internal/location"
	"github.com/example/orchid/internal/middleware"
	"github.com/example/orchid/internal/services"
	"github.com/example/orchid/internal/voucher"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, resolver *location.Resolver) {
	shippingService := services.NewShippingService(cfg.ShippingBaseURL, cfg.ShippingAPIToken, cfg.ShippingTimeout)
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	submissionService := checkout.NewService(db, resolver, shippingService)
	voucherEvaluator := voucher.NewEvaluator(db)

	authHandler := handlers.NewAuthHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db)
	checkoutHandler := handlers.NewCheckoutHandler(db, resolver, shippingService, submissionService, telegramService)
	voucherHandler := handlers.NewVoucherHandler(voucherEvaluator)
	orderHandler := handlers.NewOrderHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	cart := protected.Group("/cart")
	cart.Post("/items", cartHandler.AddItem)
	cart.Put("/items/:product_id", cartHandler.UpdateItem)
	cart.Delete("/items/:product_id", cartHandler.RemoveItem)

	co := protected.Group("/checkout")
	co.Get("/cart", checkoutHandler.GetCheckoutCart)
	co.Post("/shipping-fee", checkoutHandler.CalculateShippingFee)
	co.Get("/shipping-info", checkoutHandler.GetShippingInfo)
	co.Post("/address", checkoutHandler.UpdateDefaultAddress)
	co.Post("/order", checkoutHandler.SubmitOrder)

	protected.Post("/vouchers/validate", voucherHandler.ValidateVoucher)

	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
}
