package router

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"orders_backend/internal/handlers"
	"orders_backend/internal/middleware"
)

// SetupOrderRoutes sets up the order CRUD routes.
func SetupOrderRoutes(apiGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := apiGroup.Group("/orders")
	{
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.PUT("/:id", orderHandler.UpdateOrder)
	}
}

// SetupUploadRoutes sets up the image upload route behind the multipart
// validation filter.
func SetupUploadRoutes(apiGroup *gin.RouterGroup, uploadHandler *handlers.UploadHandler) {
	apiGroup.POST("/upload", middleware.UploadFilter(), uploadHandler.UploadImage)
}

// SetupStaticRoutes serves the entry page and the uploads directory.
func SetupStaticRoutes(engine *gin.Engine, publicDir, uploadDir string) {
	engine.StaticFile("/", filepath.Join(publicDir, "index.html"))
	engine.Static("/uploads", uploadDir)
}
