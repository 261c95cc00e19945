package main

import (
	"farmstock_backend/internal/config"
	"farmstock_backend/internal/database"
	"farmstock_backend/internal/handlers"
	"farmstock_backend/internal/mailer"
	"farmstock_backend/internal/repositories"
	"farmstock_backend/internal/router"
	"farmstock_backend/internal/services"
	"farmstock_backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

func main() {
	utils.InitLogger()

	utils.InitValidator()

	cfg := config.Load()
	utils.InitJWT(cfg.JWT.Secret)

	db, err := database.InitDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	animalTypeRepo := repositories.NewAnimalTypeRepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)
	productRepo := repositories.NewProductRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	authRepo := repositories.NewAuthRepository(db)

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)

	animalTypeService := services.NewAnimalTypeService(db, animalTypeRepo)
	supplierService := services.NewSupplierService(db, supplierRepo)
	productService := services.NewProductService(db, productRepo, supplierRepo, inventoryRepo)
	inventoryService := services.NewInventoryService(db, inventoryRepo, supplierRepo)
	storefrontService := services.NewStorefrontService(productRepo, animalTypeRepo)
	intakeService := services.NewIntakeService(smtpMailer, cfg.Site)
	authService := services.NewAuthService(db, authRepo)

	engine := router.SetupRouter(cfg.HTTP, router.Handlers{
		AnimalType: handlers.NewAnimalTypeHandler(animalTypeService),
		Supplier:   handlers.NewSupplierHandler(supplierService),
		Product:    handlers.NewProductHandler(productService),
		Inventory:  handlers.NewInventoryHandler(inventoryService),
		Storefront: handlers.NewStorefrontHandler(storefrontService),
		Intake:     handlers.NewIntakeHandler(intakeService),
		Auth:       handlers.NewAuthHandler(authService),
	})

	log.Info().Str("port", cfg.HTTP.Port).Str("site", cfg.Site.Name).Msg("Starting server")
	if err := engine.Run(":" + cfg.HTTP.Port); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
