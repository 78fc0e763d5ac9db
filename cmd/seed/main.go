package main

import (
	"fmt"
	"log"

	"github.com/tulshop/shoppingcart-backend/config"
	"github.com/tulshop/shoppingcart-backend/internal/app/model"
	"github.com/tulshop/shoppingcart-backend/internal/app/repository"
	"github.com/tulshop/shoppingcart-backend/internal/app/service"
	"github.com/tulshop/shoppingcart-backend/internal/db"
)

// Seeds the catalog with a small set of sample products.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())
	productService := service.NewProductService(productRepo)

	products := []model.Product{
		{Name: "Wireless Mouse", SKU: "WM-001", Description: "2.4GHz wireless mouse", Price: 19.99},
		{Name: "Mechanical Keyboard", SKU: "MK-010", Description: "Tenkeyless, brown switches", Price: 89.90},
		{Name: "USB-C Hub", SKU: "UH-105", Description: "7-in-1 hub with HDMI", Price: 45.50, HasDiscount: true},
		{Name: "Laptop Stand", SKU: "LS-220", Description: "Aluminium, adjustable height", Price: 32.00},
		{Name: "Webcam 1080p", SKU: "WC-330", Description: "Full HD webcam with microphone", Price: 59.00, HasDiscount: true},
	}

	created := 0
	for i := range products {
		if err := productService.CreateProduct(&products[i]); err != nil {
			log.Fatal("Failed to create product:", err)
		}
		created++
	}

	fmt.Printf("Seed completed: %d products created\n", created)
}
