package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tulshop/shoppingcart-backend/config"
	"github.com/tulshop/shoppingcart-backend/internal/app/controller"
	"github.com/tulshop/shoppingcart-backend/internal/app/repository"
	"github.com/tulshop/shoppingcart-backend/internal/app/service"
	"github.com/tulshop/shoppingcart-backend/internal/db"
	"github.com/tulshop/shoppingcart-backend/internal/router"
	"github.com/tulshop/shoppingcart-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting shopping cart backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	cartItemRepo := repository.NewCartItemRepository(db.GetDB())

	// Initialize services
	productService := service.NewProductService(productRepo)
	cartItemService := service.NewCartItemService(cartItemRepo)
	cartService := service.NewCartService(cartRepo, productRepo, cartItemService, db.GetDB())

	// Initialize controllers
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)

	// Setup router
	r := router.NewRouter(productController, cartController, cfg)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
