package router

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/screamhq/screams-backend/internal/cache"
	"github.com/screamhq/screams-backend/internal/handlers"
	"github.com/screamhq/screams-backend/internal/middleware"
	"github.com/screamhq/screams-backend/internal/repositories"
	"github.com/screamhq/screams-backend/internal/storage"
	"github.com/screamhq/screams-backend/pkg/config"
	"github.com/screamhq/screams-backend/pkg/firebase"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseApp and redisClient may be nil; firebase login and image uploads
// are then unavailable and the feed is served straight from the store.
func SetupRoutes(e *echo.Echo, db *mongo.Database, redisClient *redis.Client, firebaseApp *firebase.App, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Println("MongoDB indexes ensured.")

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	screamRepo := repositories.NewMongoScreamRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	likeRepo := repositories.NewMongoLikeRepository(db)
	notificationRepo := repositories.NewMongoNotificationRepository(db)

	feedCache := cache.NewFeedCache(redisClient, cfg.FeedCacheTTL)

	var uploader storage.Uploader
	var firebaseAuthClient *auth.Client
	if firebaseApp != nil {
		uploader = storage.NewFirebaseUploader(firebaseApp.Bucket, firebaseApp.BucketName)
		firebaseAuthClient = firebaseApp.AuthClient
	}

	authMW := middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret, cfg.StorageBucket)
	authHandler.RegisterAuthRoutes(e)
	log.Println("Auth routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, screamRepo, likeRepo, notificationRepo, uploader)
	userHandler.RegisterUserRoutes(e, authMW)
	log.Println("User routes configured.")

	screamHandler := handlers.NewScreamHandler(screamRepo, commentRepo, feedCache)
	screamHandler.RegisterScreamRoutes(e, authMW)
	log.Println("Scream routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, screamRepo)
	commentHandler.RegisterCommentRoutes(e, authMW)
	log.Println("Comment routes configured.")

	likeHandler := handlers.NewLikeHandler(likeRepo, screamRepo)
	likeHandler.RegisterLikeRoutes(e, authMW)
	log.Println("Like routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(e, authMW)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return nil
}
