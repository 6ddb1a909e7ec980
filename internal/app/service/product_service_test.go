package service

import (
	"testing"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/repository"
	"github.com/jangheelee880707/wooahhan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductServiceTest(t *testing.T) ProductService {
	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	return NewProductService(productRepo)
}

func TestProductService_ListProducts(t *testing.T) {
	productService := setupProductServiceTest(t)

	products, err := productService.ListProducts(model.CategoryAll)
	require.NoError(t, err)
	assert.Len(t, products, 6)

	// Empty category means all
	products, err = productService.ListProducts("")
	require.NoError(t, err)
	assert.Len(t, products, 6)
}

func TestProductService_ListProducts_ByCategory(t *testing.T) {
	productService := setupProductServiceTest(t)

	raw, err := productService.ListProducts(model.CategoryRaw)
	require.NoError(t, err)
	assert.Len(t, raw, 4)
	for _, p := range raw {
		assert.Equal(t, model.CategoryRaw, p.Category)
	}

	ceremonial, err := productService.ListProducts(model.CategoryCeremonial)
	require.NoError(t, err)
	require.Len(t, ceremonial, 1)
	assert.Equal(t, "p4", ceremonial[0].ID)
}

func TestProductService_ListProducts_UnknownCategory(t *testing.T) {
	productService := setupProductServiceTest(t)

	_, err := productService.ListProducts("dessert")
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

func TestProductService_GetProductByID(t *testing.T) {
	productService := setupProductServiceTest(t)

	product, err := productService.GetProductByID("p1")
	require.NoError(t, err)
	assert.Equal(t, "₩45,000", product.Price)
	assert.Equal(t, model.CutMungtigi, product.Cut)

	_, err = productService.GetProductByID("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Categories(t *testing.T) {
	productService := setupProductServiceTest(t)

	categories := productService.Categories()
	require.Len(t, categories, 4)
	assert.Equal(t, model.CategoryAll, categories[0].Code)
	for _, c := range categories {
		assert.NotEmpty(t, c.Label)
	}
}
