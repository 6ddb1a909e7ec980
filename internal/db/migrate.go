package db

import (
	"fmt"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/catalog"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table owned by the storefront.
func Models() []interface{} {
	return []interface{}{
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	}
}

// Migrate runs database migrations and seeds the default catalog into an
// empty products table.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedDefaultCatalog(DB); err != nil {
		logger.Error("Failed to seed default catalog during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedDefaultCatalog inserts the embedded catalog when no product exists yet.
func SeedDefaultCatalog(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	products, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("failed to load default catalog: %w", err)
	}
	if err := conn.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to insert default catalog: %w", err)
	}

	logger.Info("Default catalog seeded", map[string]interface{}{
		"products": len(products),
	})
	return nil
}
