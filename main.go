package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Tinnitussen/DAT250/auth"
	"github.com/Tinnitussen/DAT250/config"
	"github.com/Tinnitussen/DAT250/database"
	"github.com/Tinnitussen/DAT250/middleware"
	"github.com/Tinnitussen/DAT250/routes"
	"github.com/Tinnitussen/DAT250/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	gin.SetMode(cfg.GinMode)
	logger := utils.NewLogger(cfg.GinMode)

	// Initialize database
	db, err := database.Initialize(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}

	// Seed database with development users
	hasher := auth.NewBcryptHasher()
	if err := database.SeedData(db, hasher.Hash); err != nil {
		logger.WithError(err).Warn("Failed to seed database")
	}

	// Make sure the upload directory exists
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create uploads directory")
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(routes.SetupCORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger(logger))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, logger)

	logger.WithField("port", cfg.Port).Info("Starting Social Insecurity server")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}
}
