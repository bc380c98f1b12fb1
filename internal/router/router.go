package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"orders_backend/internal/handlers"
	"orders_backend/internal/repositories"
	"orders_backend/internal/services"
)

// Setup initializes the routing for the application: repositories, services
// and handlers are wired here and injected explicitly instead of living in
// package-level state.
func Setup(engine *gin.Engine, db *sql.DB, publicDir, uploadDir string) error {
	// Initialize Repositories
	orderRepo := repositories.NewOrderRepository(db)

	// Initialize Services
	orderService := services.NewOrderService(orderRepo, db)
	uploadService, err := services.NewUploadService(uploadDir, "/uploads")
	if err != nil {
		return err
	}

	// Initialize Handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	api := engine.Group("/api")
	{
		SetupOrderRoutes(api, orderHandler)
		SetupUploadRoutes(api, uploadHandler)
	}

	SetupStaticRoutes(engine, publicDir, uploadDir)
	return nil
}
