package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/internal/app/repository"
	"github.com/tulshop/shoppingcart-backend/internal/db"
)

func setupProductServiceTest(t *testing.T) ProductService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewProductService(repository.NewProductRepository(testDB))
}

func TestProductService_CreateProduct(t *testing.T) {
	svc := setupProductServiceTest(t)

	product := &model.Product{
		Name:  "Wireless Mouse",
		SKU:   "WM-100",
		Price: 19.99,
	}
	err := svc.CreateProduct(product)
	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID)
}

func TestProductService_CreateProduct_TrimsName(t *testing.T) {
	svc := setupProductServiceTest(t)

	product := &model.Product{Name: "  Padded Name  ", Price: 1.0}
	require.NoError(t, svc.CreateProduct(product))

	found, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Padded Name", found.Name)
}

func TestProductService_CreateProduct_RejectsSuppliedID(t *testing.T) {
	svc := setupProductServiceTest(t)

	product := &model.Product{
		ID:    "caller-chosen-id",
		Name:  "Should Fail",
		Price: 1.0,
	}
	err := svc.CreateProduct(product)
	assert.ErrorIs(t, err, ErrProductHasID)

	products, listErr := svc.ListProducts()
	require.NoError(t, listErr)
	assert.Empty(t, products)
}

func TestProductService_GetProductByID_EffectivePrice(t *testing.T) {
	svc := setupProductServiceTest(t)

	plain := &model.Product{Name: "Plain", Price: 10.0}
	discounted := &model.Product{Name: "Discounted", Price: 10.0, HasDiscount: true}
	require.NoError(t, svc.CreateProduct(plain))
	require.NoError(t, svc.CreateProduct(discounted))

	foundPlain, err := svc.GetProductByID(plain.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, foundPlain.EffectivePrice)

	foundDiscounted, err := svc.GetProductByID(discounted.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, foundDiscounted.EffectivePrice)
}

func TestProductService_GetProductByID_NotFound(t *testing.T) {
	svc := setupProductServiceTest(t)

	_, err := svc.GetProductByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_UpdateProduct(t *testing.T) {
	svc := setupProductServiceTest(t)

	product := &model.Product{Name: "Before", Price: 10.0}
	require.NoError(t, svc.CreateProduct(product))

	updated := &model.Product{
		ID:          product.ID,
		Name:        "After",
		Price:       20.0,
		HasDiscount: true,
	}
	require.NoError(t, svc.UpdateProduct(updated))

	found, err := svc.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.Name)
	assert.Equal(t, 20.0, found.Price)
	assert.True(t, found.HasDiscount)
	assert.Equal(t, 10.0, found.EffectivePrice)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	svc := setupProductServiceTest(t)

	err := svc.UpdateProduct(&model.Product{
		ID:    "00000000-0000-0000-0000-000000000000",
		Name:  "Ghost",
		Price: 1.0,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	svc := setupProductServiceTest(t)

	product := &model.Product{Name: "Doomed", Price: 1.0}
	require.NoError(t, svc.CreateProduct(product))

	require.NoError(t, svc.DeleteProduct(product.ID))

	_, err := svc.GetProductByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct_AbsentIsIdempotent(t *testing.T) {
	svc := setupProductServiceTest(t)

	err := svc.DeleteProduct("00000000-0000-0000-0000-000000000000")
	assert.NoError(t, err)
}
