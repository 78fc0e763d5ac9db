package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/internal/db"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) ProductRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewProductRepository(testDB)
}

func TestProductRepository_CreateGeneratesID(t *testing.T) {
	repo := setupProductRepositoryTest(t)

	product := &model.Product{
		Name:  "Test Product",
		SKU:   "TP-001",
		Price: 10.0,
	}
	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)
}

func TestProductRepository_FindByID(t *testing.T) {
	repo := setupProductRepositoryTest(t)

	product := &model.Product{
		Name:        "Discounted",
		Price:       10.0,
		HasDiscount: true,
	}
	require.NoError(t, repo.Create(product))

	found, err := repo.FindByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
	// Effective price is recomputed on every read, never stored
	assert.Equal(t, 5.0, found.EffectivePrice)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	repo := setupProductRepositoryTest(t)

	_, err := repo.FindByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_FindAll(t *testing.T) {
	repo := setupProductRepositoryTest(t)

	require.NoError(t, repo.Create(&model.Product{Name: "A", Price: 1}))
	require.NoError(t, repo.Create(&model.Product{Name: "B", Price: 2}))

	products, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductRepository_Update(t *testing.T) {
	repo := setupProductRepositoryTest(t)

	product := &model.Product{Name: "Old", Price: 10.0}
	require.NoError(t, repo.Create(product))

	product.Name = "New"
	product.Price = 12.5
	require.NoError(t, repo.Update(product))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", found.Name)
	assert.Equal(t, 12.5, found.Price)
}

func TestProductRepository_Delete(t *testing.T) {
	repo := setupProductRepositoryTest(t)

	product := &model.Product{Name: "Doomed", Price: 1}
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.Delete(product.ID))

	_, err := repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_Delete_AbsentIsNoError(t *testing.T) {
	repo := setupProductRepositoryTest(t)

	err := repo.Delete("00000000-0000-0000-0000-000000000000")
	assert.NoError(t, err)
}
