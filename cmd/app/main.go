package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/netanelbarel75/shelflife-ai-sub001/cmd/config"
	migration "github.com/netanelbarel75/shelflife-ai-sub001/cmd/database/migrate"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/logger"
	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils"
)

func main() {
	_ = godotenv.Load()
	utils.LoadConfig()

	zlog := logger.NewWithDefaults(utils.GetConfig("SERVER_ENV"))
	defer zlog.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := migration.Migrate(db); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	kv, err := config.NewKVStore()
	if err != nil {
		zlog.Fatal("failed to open key-value store", zap.Error(err))
	}
	defer kv.Close()

	app, tracker, err := config.NewApp(db, kv, zlog)
	if err != nil {
		zlog.Fatal("failed to build application", zap.Error(err))
	}

	if err := tracker.Start(context.Background()); err != nil {
		zlog.Fatal("failed to start inventory tracker", zap.Error(err))
	}

	port := utils.GetConfig("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()
	zlog.Info("server started", zap.String("port", port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	tracker.Stop()
	if err := app.Shutdown(); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
}
