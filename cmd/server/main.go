package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"orders_backend/internal/database"
	"orders_backend/internal/router"
	"orders_backend/pkg/utils"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	// Load .env if present; real environment variables win.
	if err := godotenv.Load(); err == nil {
		utils.LogInfo("Loaded configuration from .env file")
	}

	dbPath := utils.Getenv("DB_PATH", filepath.Join("data", "orders.db"))
	publicDir := utils.Getenv("PUBLIC_DIR", "public")
	uploadDir := utils.Getenv("UPLOAD_DIR", filepath.Join(publicDir, "uploads"))

	// Initialize Database
	db := database.InitDB(dbPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"path": dbPath})

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	if err := router.Setup(engine, db, publicDir, uploadDir); err != nil {
		utils.LogError(err, "Failed to set up routes")
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Server port configuration
	port := utils.Getenv("PORT", "3000")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
