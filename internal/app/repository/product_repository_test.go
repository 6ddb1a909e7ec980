package repository

import (
	"errors"
	"testing"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) ProductRepository {
	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewProductRepository(testDB)
}

func TestProductRepository_FindAll(t *testing.T) {
	repo := setupProductTest(t)

	products, err := repo.FindAll(model.CategoryAll)
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p6", products[5].ID)
}

func TestProductRepository_FindAllByCategory(t *testing.T) {
	repo := setupProductTest(t)

	raw, err := repo.FindAll(model.CategoryRaw)
	require.NoError(t, err)
	assert.Len(t, raw, 4)
	for _, p := range raw {
		assert.Equal(t, model.CategoryRaw, p.Category)
	}

	grill, err := repo.FindAll(model.CategoryGrill)
	require.NoError(t, err)
	require.Len(t, grill, 1)
	assert.Equal(t, "p5", grill[0].ID)
}

func TestProductRepository_FindByID(t *testing.T) {
	repo := setupProductTest(t)

	p, err := repo.FindByID("p3")
	require.NoError(t, err)
	assert.Equal(t, "명품 꿀 육회", p.Name)
	assert.Equal(t, model.CutYukhoe, p.Cut)

	_, err = repo.FindByID("nope")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProductRepository_Upsert(t *testing.T) {
	repo := setupProductTest(t)

	err := repo.Upsert([]model.Product{
		{ID: "p3", Name: "명품 꿀 육회 (대)", Price: "₩45,000", Cut: model.CutYukhoe, Category: model.CategoryRaw, SortOrder: 2},
		{ID: "p7", Name: "살치살 구이", Price: "₩98,000", Cut: model.CutSalchisal, Category: model.CategoryGrill, SortOrder: 6},
	})
	require.NoError(t, err)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	p, err := repo.FindByID("p3")
	require.NoError(t, err)
	assert.Equal(t, "명품 꿀 육회 (대)", p.Name)
	assert.Equal(t, "₩45,000", p.Price)
}
