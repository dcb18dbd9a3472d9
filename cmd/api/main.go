package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/formforge/formforge/internal/api/middleware"
	"github.com/formforge/formforge/internal/api/routes"
	"github.com/formforge/formforge/internal/application"
	"github.com/formforge/formforge/internal/config"
	"github.com/formforge/formforge/internal/config/db"
	"github.com/formforge/formforge/internal/objectstore"
	"github.com/formforge/formforge/internal/repository"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	var repos *repository.Repos
	switch config.StorageBackend {
	case "file":
		repos = repository.NewFileRepositories(config.DataFile)
	default:
		db.Init()
		if err := db.DB.AutoMigrate(&repository.FormBlob{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		repos = repository.NewRepositories(db.DB)
	}

	if config.BackupEnabled {
		objectstore.Init()
	}

	services := application.New(repos)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(router, services)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
