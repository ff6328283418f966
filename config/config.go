package config

import (
	"os"

	"ontheway-api/models"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "ontheway_super_secret_2024"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Open connects to the given sqlite database and migrates the schema.
// Tests use it directly with an in-memory path.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Place{},
		&models.Delegate{},
	); err != nil {
		return nil, err
	}

	// Uniqueness of active place names lives in the store, not only in the
	// pre-insert checks. Partial indexes have no GORM tag, hence raw SQL.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_places_active_name ON places(name) WHERE is_active`,
	).Error; err != nil {
		return nil, err
	}

	return db, nil
}

func InitDB() {
	var err error
	DB, err = Open(getEnv("DB_PATH", "ontheway.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	log.Info().Msg("database connected and migrated")
}
