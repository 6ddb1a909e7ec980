package service

import (
	"errors"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/repository"
	"github.com/jangheelee880707/wooahhan/pkg/logger"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// CategoryInfo is a filter tab of the storefront.
type CategoryInfo struct {
	Code  model.ProductCategory `json:"code"`
	Label string                `json:"label"`
}

type ProductService interface {
	ListProducts(category model.ProductCategory) ([]model.Product, error)
	GetProductByID(id string) (*model.Product, error)
	Categories() []CategoryInfo
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// ListProducts filters by category; an empty category means all.
func (s *productService) ListProducts(category model.ProductCategory) ([]model.Product, error) {
	if category == "" {
		category = model.CategoryAll
	}
	if !category.IsValid() {
		logger.Warn("Unknown product category requested", map[string]interface{}{
			"category": category,
		})
		return nil, model.ErrUnknownCategory
	}

	products, err := s.productRepo.FindAll(category)
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) Categories() []CategoryInfo {
	categories := model.Categories()
	infos := make([]CategoryInfo, 0, len(categories))
	for _, c := range categories {
		infos = append(infos, CategoryInfo{Code: c, Label: c.Label()})
	}
	return infos
}
