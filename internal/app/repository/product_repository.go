package repository

import (
	"errors"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	FindAll(category model.ProductCategory) ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	Upsert(products []model.Product) error
	Count() (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// FindAll lists products in catalog order. CategoryAll or an empty category
// returns everything.
func (r *productRepository) FindAll(category model.ProductCategory) ([]model.Product, error) {
	query := r.db.Model(&model.Product{})
	if category != "" && category != model.CategoryAll {
		query = query.Where("category = ?", category)
	}

	var products []model.Product
	if err := query.Order("sort_order ASC, id ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to list products from database", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}

	logger.Debug("Products listed from database", map[string]interface{}{
		"category": category,
		"count":    len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return nil, err
	}
	return &product, nil
}

// Upsert inserts new products and overwrites existing ones by id.
func (r *productRepository) Upsert(products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price", "cut", "category", "image_url", "sort_order", "updated_at"}),
	}).Create(&products).Error
	if err != nil {
		logger.Error("Failed to upsert products", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}

	logger.Info("Products upserted", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}
