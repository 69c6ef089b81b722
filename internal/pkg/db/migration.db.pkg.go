package database

import (
	"fmt"

	"checkout-hub/internal/common/models"
	"checkout-hub/internal/pkg/logger"
)

func (db *Database) RunMigrations() error {
	logger.Info.Println("Starting database migrations...")

	entities := []interface{}{
		&models.CheckoutOrder{},
	}

	for _, entity := range entities {
		logger.Info.Printf("Migrating model: %T", entity)
		if err := db.AutoMigrate(entity); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", entity, err)
		}
	}

	logger.Info.Println("Database migrations completed successfully")
	return nil
}
