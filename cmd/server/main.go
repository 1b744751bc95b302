package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/screamhq/screams-backend/internal/cache"
	"github.com/screamhq/screams-backend/internal/router"
	"github.com/screamhq/screams-backend/internal/validators"
	"github.com/screamhq/screams-backend/pkg/config"
	"github.com/screamhq/screams-backend/pkg/firebase"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase. Optional: without it, firebase login and image
	// uploads are disabled but the API still serves.
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Printf("Firebase disabled: %v", err)
		firebaseApp = nil
	}

	// Initialize Redis feed cache. Also optional.
	redisClient := cache.InitRedis(cfg.RedisAddr)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Mongo.Database(cfg.MongoDatabase), redisClient, firebaseApp, cfg); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
