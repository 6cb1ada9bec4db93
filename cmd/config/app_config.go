package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/netanelbarel75/shelflife-ai-sub001/internal/api/handlers"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/api/routes"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/middleware"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils/mailing"
	s3storage "github.com/netanelbarel75/shelflife-ai-sub001/internal/utils/storage"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/inventory"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/jwt"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/marketplace"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/notify"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/payment"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/storage"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/user"
)

func NewApp(db *gorm.DB, kv storage.Store, zlog *zap.Logger) (*fiber.App, inventory.InventoryService, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := s3storage.NewAwsS3()
	dispatcher := notify.NewDispatcher(zlog, utils.GetConfig("NOTIFY_EMAIL_TO"))

	reclassifyInterval, err := time.ParseDuration(utils.GetConfig("RECLASSIFY_INTERVAL"))
	if err != nil {
		reclassifyInterval = 24 * time.Hour
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	receiptRepository := inventory.NewReceiptRepository(db)
	marketplaceRepository := marketplace.NewMarketplaceRepository(db)
	paymentRepository := payment.NewPaymentRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, mailing.SendMail, mailing.VerificationBody)
	inventoryService := inventory.NewInventoryService(kv, dispatcher, zlog, reclassifyInterval)
	receiptService := inventory.NewReceiptService(receiptRepository, inventoryService, s3)
	paymentService := payment.NewPaymentService(paymentRepository, payment.NewSnapClient(), marketplaceRepository)
	marketplaceService := marketplace.NewMarketplaceService(marketplaceRepository, inventoryService, paymentService, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, receiptService, s3, validator)
	marketplaceHandler := handlers.NewMarketplaceHandler(marketplaceService, validator)
	paymentHandler := handlers.NewPaymentHandler(paymentService, validator)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		InventoryHandler:   inventoryHandler,
		MarketplaceHandler: marketplaceHandler,
		PaymentHandler:     paymentHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, inventoryService, nil
}
