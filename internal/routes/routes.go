package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/rosenook/internal/config"
	"github.com/example/rosenook/internal/handlers"
	"github.com/example/rosenook/internal/middleware"
	"github.com/example/rosenook/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	lifecycle := services.NewOrderLifecycle(db)

	authHandler := handlers.NewAuthHandler(db, cfg)
	passwordResetHandler := handlers.NewPasswordResetHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	orderHandler := handlers.NewOrderHandler(db, cfg, lifecycle)
	addressHandler := handlers.NewAddressHandler(db)
	deliveryHandler := handlers.NewDeliveryHandler(db, lifecycle)
	adminHandler := handlers.NewAdminHandler(db, lifecycle)
	regionHandler := handlers.NewRegionHandler(db)
	uploadHandler := handlers.NewUploadHandler(cfg)

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", passwordResetHandler.ForgotPassword)
	auth.Post("/reset-password", passwordResetHandler.ResetPassword)

	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/delivery-regions", catalogHandler.ListDeliveryRegions)
	api.Get("/track/:orderNumber", orderHandler.TrackOrder)

	// Authenticated routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/addresses", addressHandler.ListAddresses)
	protected.Post("/addresses", addressHandler.CreateAddress)

	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:orderNumber", orderHandler.GetOrder)
	protected.Post("/orders/:orderNumber/confirm-delivery", orderHandler.ConfirmDelivery)
	protected.Post("/orders/:orderNumber/review", orderHandler.ReviewOrder)
	protected.Get("/orders/:orderNumber/qrcode", orderHandler.OrderQRCode)

	// Delivery-personnel routes
	delivery := protected.Group("/delivery", middleware.RequireDelivery())
	delivery.Get("/dashboard", deliveryHandler.Dashboard)
	delivery.Get("/history", deliveryHandler.History)
	delivery.Post("/orders/:orderNumber/deliver", deliveryHandler.MarkDelivered)

	// Admin routes
	admin := protected.Group("/admin", middleware.RequireAdmin())
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Get("/delivery-personnel", adminHandler.ListDeliveryPersonnel)
	admin.Get("/delivery-regions", regionHandler.ListRegions)
	admin.Post("/delivery-regions", regionHandler.CreateRegion)
	admin.Get("/delivery-regions/:id/subregions", regionHandler.ListSubregions)
	admin.Post("/delivery-regions/:id/subregions", regionHandler.CreateSubregion)

	protected.Patch("/orders/:orderNumber", middleware.RequireAdmin(), adminHandler.UpdateOrderStatus)
	protected.Post("/upload", middleware.RequireAdmin(), uploadHandler.Upload)
}
