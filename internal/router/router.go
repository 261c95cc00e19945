package router

import (
	"net/http"
	"strings"
	"time"

	"farmstock_backend/internal/config"
	"farmstock_backend/internal/handlers"
	"farmstock_backend/internal/middleware"
	"farmstock_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers aggregates every handler wired into the router.
type Handlers struct {
	AnimalType *handlers.AnimalTypeHandler
	Supplier   *handlers.SupplierHandler
	Product    *handlers.ProductHandler
	Inventory  *handlers.InventoryHandler
	Storefront *handlers.StorefrontHandler
	Intake     *handlers.IntakeHandler
	Auth       *handlers.AuthHandler
}

// SetupRouter configures the gin engine: global middleware, the public
// storefront and intake routes, and the authenticated admin API.
func SetupRouter(cfg config.HTTPConfig, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.GinLogger())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.AllowedOrigins == "" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.AllowedOrigins, ",")
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	setupPublicRoutes(api, cfg, h)
	setupAdminRoutes(api, h)
	return router
}

func setupPublicRoutes(api *gin.RouterGroup, cfg config.HTTPConfig, h Handlers) {
	shop := api.Group("/shop")
	{
		shop.GET("/products", h.Storefront.ListProducts)
		shop.GET("/products/:slug", h.Storefront.GetProduct)
		shop.GET("/products/:slug/images", h.Storefront.GetProductImages)
		shop.GET("/categories", h.Storefront.GetCategories)
	}

	// Public write endpoints are rate limited; everything else public is read-only.
	intake := api.Group("/", middleware.RateLimitMiddleware(cfg.IntakeRate))
	{
		intake.POST("/orders", h.Intake.SubmitOrder)
		intake.POST("/contact", h.Intake.SubmitContact)
	}

	api.POST("/auth/login", h.Auth.Login)
}

func setupAdminRoutes(api *gin.RouterGroup, h Handlers) {
	admin := api.Group("/", middleware.AuthMiddleware())

	auth := admin.Group("/auth")
	{
		auth.GET("/me", h.Auth.Me)
		auth.POST("/register", middleware.RoleAuthMiddleware("admin"), h.Auth.Register)
	}

	animalTypes := admin.Group("/animal-types")
	{
		animalTypes.POST("", h.AnimalType.CreateAnimalType)
		animalTypes.GET("", h.AnimalType.GetAllAnimalTypes)
		animalTypes.GET("/:id", h.AnimalType.GetAnimalType)
		animalTypes.PUT("/:id", h.AnimalType.UpdateAnimalType)
		animalTypes.DELETE("/:id", h.AnimalType.DeleteAnimalType)
	}

	suppliers := admin.Group("/suppliers")
	{
		suppliers.POST("", h.Supplier.CreateSupplier)
		suppliers.GET("", h.Supplier.GetAllSuppliers)
		suppliers.GET("/:id", h.Supplier.GetSupplier)
		suppliers.PUT("/:id", h.Supplier.UpdateSupplier)
		suppliers.DELETE("/:id", h.Supplier.DeleteSupplier)
	}

	products := admin.Group("/products")
	{
		products.POST("", h.Product.CreateProduct)
		products.GET("", h.Product.GetAllProducts)
		products.GET("/:id", h.Product.GetProduct)
		products.PUT("/:id", h.Product.UpdateProduct)
		products.DELETE("/:id", h.Product.DeleteProduct)

		products.POST("/:id/suppliers/:supplier_id", h.Product.AddSupplierToProduct)
		products.DELETE("/:id/suppliers/:supplier_id", h.Product.RemoveSupplierFromProduct)

		products.POST("/:id/images", h.Product.AddProductImage)
		products.GET("/:id/images", h.Product.GetProductImages)

		products.GET("/:id/inventory", h.Inventory.GetInventoryByProduct)
		products.POST("/:id/transactions", h.Inventory.RecordTransactionForProduct)
	}

	admin.DELETE("/product-images/:id", h.Product.DeleteProductImage)

	inventory := admin.Group("/inventory")
	{
		inventory.GET("", h.Inventory.GetAllInventories)
		inventory.GET("/:id", h.Inventory.GetInventory)
		inventory.PUT("/:id/settings", h.Inventory.UpdateInventorySettings)
		inventory.POST("/:id/transactions", h.Inventory.RecordTransaction)
	}

	admin.GET("/inventory-transactions", h.Inventory.GetTransactions)
}
