package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tulshop/shoppingcart-backend/config"
	"github.com/tulshop/shoppingcart-backend/internal/app/controller"
	"github.com/tulshop/shoppingcart-backend/internal/middleware"
)

type Router struct {
	productController *controller.ProductController
	cartController    *controller.CartController
	config            *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	cartController *controller.CartController,
	cfg *config.Config,
) *Router {
	return &Router{
		productController: productController,
		cartController:    cartController,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Shopping cart API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetAllProducts)
			products.GET("/:id", r.productController.GetProductByID)
			products.POST("", r.productController.CreateProduct)
			products.PUT("/:id", r.productController.UpdateProduct)
			products.DELETE("/:id", r.productController.DeleteProduct)
		}

		carts := v1.Group("/carts")
		{
			carts.GET("", r.cartController.ListCarts)
			carts.GET("/:id", r.cartController.GetCart)
			carts.POST("", r.cartController.CreateCart)
			carts.POST("/:id/products", r.cartController.AddProduct)
			carts.PUT("/:id/products", r.cartController.UpdateQuantity)
			carts.DELETE("/:id/products/:product_id", r.cartController.RemoveProduct)
			carts.GET("/:id/products", r.cartController.GetCartProducts)
			carts.GET("/:id/total-price", r.cartController.GetTotalPrice)
			carts.POST("/:id/checkout", r.cartController.Checkout)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
