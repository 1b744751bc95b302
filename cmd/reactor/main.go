package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/screamhq/screams-backend/internal/reactor"
	"github.com/screamhq/screams-backend/internal/repositories"
	"github.com/screamhq/screams-backend/pkg/config"
)

// The reactor runs as its own process: it consumes document change events and
// maintains derived state (notifications, denormalized images, cascades)
// outside any request context.
func main() {
	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	database := db.Mongo.Database(cfg.MongoDatabase)
	screamRepo := repositories.NewMongoScreamRepository(database)
	notificationRepo := repositories.NewMongoNotificationRepository(database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := reactor.New(screamRepo, notificationRepo)
	source := reactor.NewMongoSource(database)

	log.Println("Reactor starting.")
	if err := r.Run(ctx, source); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Reactor stopped: %v", err)
	}
	log.Println("Reactor stopped.")
}
