package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/internal/app/repository"
	"github.com/tulshop/shoppingcart-backend/internal/app/service"
	"github.com/tulshop/shoppingcart-backend/internal/db"
)

func setupProductControllerTest(t *testing.T) (*ProductController, *gin.Engine, repository.ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	productService := service.NewProductService(productRepo)
	productController := NewProductController(productService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return productController, router, productRepo
}

func TestProductController_GetAllProducts_Success(t *testing.T) {
	controller, router, productRepo := setupProductControllerTest(t)

	productRepo.Create(&model.Product{Name: "Wireless Mouse", Price: 19.99})
	productRepo.Create(&model.Product{Name: "USB-C Hub", Price: 45.50, HasDiscount: true})

	router.GET("/products", controller.GetAllProducts)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	products := response["products"].([]interface{})
	assert.Len(t, products, 2)
	assert.Equal(t, float64(2), response["count"])
}

func TestProductController_GetAllProducts_Empty(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.GET("/products", controller.GetAllProducts)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	products := response["products"].([]interface{})
	assert.Len(t, products, 0)
	assert.Equal(t, float64(0), response["count"])
}

func TestProductController_GetProductByID_Success(t *testing.T) {
	controller, router, productRepo := setupProductControllerTest(t)

	product := &model.Product{Name: "Discounted Keyboard", Price: 90.0, HasDiscount: true}
	productRepo.Create(product)

	router.GET("/products/:id", controller.GetProductByID)

	req := httptest.NewRequest(http.MethodGet, "/products/"+product.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	productData := response["product"].(map[string]interface{})
	assert.Equal(t, "Discounted Keyboard", productData["name"])
	assert.Equal(t, float64(90.0), productData["price"])
	assert.Equal(t, float64(45.0), productData["effective_price"])
}

func TestProductController_GetProductByID_NotFound(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.GET("/products/:id", controller.GetProductByID)

	req := httptest.NewRequest(http.MethodGet, "/products/00000000-0000-0000-0000-000000000000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "PRODUCT_NOT_FOUND", response["error"])
}

func TestProductController_CreateProduct_Success(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.POST("/products", controller.CreateProduct)

	reqBody := ProductRequest{
		Name:        "Laptop Stand",
		SKU:         "LS-200",
		Description: "Aluminium laptop stand",
		Price:       32.00,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	productData := response["product"].(map[string]interface{})
	assert.Equal(t, "Laptop Stand", productData["name"])
	assert.NotEmpty(t, productData["id"])
	assert.Equal(t, fmt.Sprintf("/api/v1/products/%s", productData["id"]), w.Header().Get("Location"))
}

func TestProductController_CreateProduct_SuppliedID(t *testing.T) {
	controller, router, productRepo := setupProductControllerTest(t)

	router.POST("/products", controller.CreateProduct)

	reqBody := ProductRequest{
		ID:    "caller-chosen-id",
		Name:  "Should Fail",
		Price: 1.0,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "PRODUCT_HAS_ID", response["error"])

	products, listErr := productRepo.FindAll()
	require.NoError(t, listErr)
	assert.Empty(t, products)
}

func TestProductController_CreateProduct_InvalidRequest(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.POST("/products", controller.CreateProduct)

	tests := []struct {
		name    string
		reqBody map[string]interface{}
	}{
		{
			name:    "Missing name",
			reqBody: map[string]interface{}{"price": 10.0},
		},
		{
			name:    "Negative price",
			reqBody: map[string]interface{}{"name": "Thing", "price": -1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestProductController_UpdateProduct_Success(t *testing.T) {
	controller, router, productRepo := setupProductControllerTest(t)

	product := &model.Product{Name: "Old Name", Price: 10.0}
	productRepo.Create(product)

	router.PUT("/products/:id", controller.UpdateProduct)

	reqBody := ProductRequest{
		ID:          product.ID,
		Name:        "Updated Name",
		Price:       20.0,
		HasDiscount: true,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/products/"+product.ID, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	productData := response["product"].(map[string]interface{})
	assert.Equal(t, "Updated Name", productData["name"])
	assert.Equal(t, float64(20.0), productData["price"])
	assert.Equal(t, true, productData["has_discount"])
}

func TestProductController_UpdateProduct_IDMismatch(t *testing.T) {
	controller, router, productRepo := setupProductControllerTest(t)

	product := &model.Product{Name: "Anchored", Price: 10.0}
	productRepo.Create(product)

	router.PUT("/products/:id", controller.UpdateProduct)

	reqBody := ProductRequest{
		ID:    "a-different-id",
		Name:  "Sneaky",
		Price: 1.0,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/products/"+product.ID, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "PRODUCT_ID_MISMATCH", response["error"])
}

func TestProductController_UpdateProduct_MissingBodyID(t *testing.T) {
	controller, router, productRepo := setupProductControllerTest(t)

	product := &model.Product{Name: "Anchored", Price: 10.0}
	productRepo.Create(product)

	router.PUT("/products/:id", controller.UpdateProduct)

	reqBody := ProductRequest{Name: "No ID", Price: 1.0}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/products/"+product.ID, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_UpdateProduct_NotFound(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.PUT("/products/:id", controller.UpdateProduct)

	ghostID := "00000000-0000-0000-0000-000000000000"
	reqBody := ProductRequest{ID: ghostID, Name: "Ghost", Price: 1.0}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/products/"+ghostID, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_DeleteProduct_Success(t *testing.T) {
	controller, router, productRepo := setupProductControllerTest(t)

	product := &model.Product{Name: "To Be Deleted", Price: 10.0}
	productRepo.Create(product)

	router.DELETE("/products/:id", controller.DeleteProduct)

	req := httptest.NewRequest(http.MethodDelete, "/products/"+product.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err := productRepo.FindByID(product.ID)
	assert.Error(t, err)
}

func TestProductController_DeleteProduct_AbsentIsNoContent(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.DELETE("/products/:id", controller.DeleteProduct)

	req := httptest.NewRequest(http.MethodDelete, "/products/00000000-0000-0000-0000-000000000000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
