package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/netanelbarel75/shelflife-ai-sub001/internal/api/handlers"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/middleware"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/jwt"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	InventoryHandler   handlers.InventoryHandler
	MarketplaceHandler handlers.MarketplaceHandler
	PaymentHandler     handlers.PaymentHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Inventory()
	c.Marketplace()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Inventory() {
	inventory := c.App.Group("/api/v1/inventory", c.Middleware.AuthMiddleware(c.JWTService))

	inventory.Get("/alerts", c.InventoryHandler.GetExpiryAlerts)
	inventory.Get("/stats", c.InventoryHandler.GetStats)
	inventory.Get("/export", c.InventoryHandler.ExportInventory)
	inventory.Post("/import", c.InventoryHandler.ImportInventory)

	inventory.Post("/receipt-scan", c.InventoryHandler.UploadReceipt)
	inventory.Get("/receipt-scan/:id", c.InventoryHandler.GetReceiptScan)
	inventory.Post("/save-scanned", c.InventoryHandler.SaveScannedItems)

	inventory.Post("", c.InventoryHandler.AddItem)
	inventory.Get("", c.InventoryHandler.GetInventory)
	inventory.Get("/:id", c.InventoryHandler.GetItemDetails)
	inventory.Put("/:id", c.InventoryHandler.UpdateItem)
	inventory.Post("/:id/used", c.InventoryHandler.MarkAsUsed)
	inventory.Post("/:id/share", c.InventoryHandler.ShareItem)
	inventory.Post("/:id/photo", c.InventoryHandler.AddPhoto)
}

func (c *Config) Marketplace() {
	market := c.App.Group("/api/v1/marketplace", c.Middleware.AuthMiddleware(c.JWTService))

	market.Post("/listings", c.MarketplaceHandler.CreateListing)
	market.Get("/listings/nearby", c.MarketplaceHandler.GetNearbyListings)
	market.Get("/listings/mine", c.MarketplaceHandler.GetMyListings)
	market.Post("/listings/:id/claim", c.MarketplaceHandler.ClaimListing)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.PaymentHandler.MidtransWebhook)
}
