package database

import (
	"fmt"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// AllModels returns every model that participates in migrations, in
// dependency order so foreign keys resolve.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Message{},
		&models.Follow{},
		&models.Like{},
	}
}

// Migrate runs AutoMigrate for all registered models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
