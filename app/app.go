package app

import (
	"fmt"
	"log"
	"os"

	"distribuidora-backoffice/app/controller"
	"distribuidora-backoffice/app/router"
	"distribuidora-backoffice/db"
	"distribuidora-backoffice/pricing"
	"distribuidora-backoffice/repository"
	"distribuidora-backoffice/service"
)

// Initialize sets up the database, services and routes
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis-backed discount cache (optional)
	var cache db.CacheClient
	if redisClient := db.NewRedisClient(); redisClient != nil {
		cache = redisClient
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository()
	referenceRepo := repository.NewReferenceRepository()
	clientRepo := repository.NewClientRepository()
	discountRepo := repository.NewDiscountRepository()
	orderRepo := repository.NewOrderRepository()
	orderRequestRepo := repository.NewOrderRequestRepository()
	returnRequestRepo := repository.NewReturnRequestRepository()
	userRepo := repository.NewUserRepository()
	vehicleRepo := repository.NewVehicleRepository()
	catalogRepo := repository.NewCatalogRepository()

	// Discount resolution
	discountSource := repository.NewDiscountSourceAdapter(productRepo, clientRepo, discountRepo)
	resolver := pricing.NewResolver(discountSource, cache)

	// Auth
	tokenService, err := service.NewTokenService()
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	authService := service.NewAuthService(userRepo, tokenService)

	// Google Drive integration (optional, requires credentials)
	var driveService service.DriveServiceInterface
	var syncService service.SyncServiceInterface
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath != "" {
		ds, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return fmt.Errorf("failed to initialize Drive service: %w", err)
		}
		driveService = ds
		syncService = service.NewSyncService(ds, productRepo)
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, product image sync disabled")
	}

	// Image cache directory for optimized product images
	if err := service.EnsureCacheDir(); err != nil {
		return fmt.Errorf("failed to create image cache directory: %w", err)
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}
	catalogService := service.NewCatalogService(catalogRepo, clientRepo, resolver, baseURL)

	// Initialize controllers
	controllers := &router.Controllers{
		Auth:          controller.NewAuthController(authService),
		Product:       controller.NewProductController(productRepo, syncService, driveService),
		Reference:     controller.NewReferenceController(referenceRepo),
		Client:        controller.NewClientController(clientRepo),
		Discount:      controller.NewDiscountController(discountRepo, resolver),
		Order:         controller.NewOrderController(orderRepo, orderRequestRepo, productRepo, resolver),
		ReturnRequest: controller.NewReturnRequestController(returnRequestRepo),
		User:          controller.NewUserController(userRepo, authService),
		Vehicle:       controller.NewVehicleController(vehicleRepo),
		Catalog:       controller.NewCatalogController(catalogService),
	}

	// Setup routes
	router.SetupRoutes(controllers, authService)

	log.Printf("✅ Application initialized successfully")
	return nil
}
