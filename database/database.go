package database

import (
	"fmt"

	"github.com/lshigami/hirewise/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the postgres connection. It returns a nil *gorm.DB when no
// database host is configured; persistence features are then disabled.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	if !cfg.Database.Enabled() {
		log.Warn().Msg("DATABASE_HOST is not set. Analyses and interview sessions will not be persisted.")
		return nil, nil
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("host", cfg.Database.Host).Str("database", cfg.Database.Name).Msg("Connected to database")
	return db, nil
}
