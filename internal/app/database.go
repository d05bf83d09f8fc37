package app

import (
	"fmt"

	"kudos_web/internal/config"
	"kudos_web/internal/kudo"
	"kudos_web/internal/platform/database"
	"kudos_web/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewDatabase opens the configured database and brings the schema up to date.
func NewDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, cleanup, err := database.NewGORM(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(db); err != nil {
		cleanup()
		return nil, nil, err
	}
	return db, cleanup, nil
}

// Migrate creates or updates the users, profiles and kudos tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.User{}, &user.Profile{}, &kudo.Kudo{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
