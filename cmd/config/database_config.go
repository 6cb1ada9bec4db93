package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/netanelbarel75/shelflife-ai-sub001/internal/utils"
	"github.com/netanelbarel75/shelflife-ai-sub001/pkg/storage"
)

func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		utils.GetConfig("DB_HOST"),
		utils.GetConfig("DB_USER"),
		utils.GetConfig("DB_PASSWORD"),
		utils.GetConfig("DB_NAME"),
		utils.GetConfig("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
		return nil, err
	}
	return db, nil
}

// NewKVStore picks the tracker's key-value backend from configuration:
// redis for shared deployments, sqlite for single-node ones.
func NewKVStore() (storage.Store, error) {
	switch utils.GetConfig("KV_BACKEND") {
	case "redis":
		return storage.NewRedisStore(
			utils.GetConfig("REDIS_ADDR"),
			utils.GetConfig("REDIS_PASSWORD"),
		)
	case "sqlite", "":
		path := utils.GetConfig("LOCAL_KV_PATH")
		if path == "" {
			path = "shelflife.db"
		}
		return storage.NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown KV_BACKEND %q", utils.GetConfig("KV_BACKEND"))
	}
}
