package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB collection names
const (
	CollectionUsers         = "users"
	CollectionScreams       = "screams"
	CollectionComments      = "comments"
	CollectionLikes         = "likes"
	CollectionNotifications = "notifications"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// compound index on likes is what makes duplicate-like rejection a store-level
// guarantee instead of a check-then-act query.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionLikes).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userHandle", Value: 1}, {Key: "screamId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create likes index: %w", err)
	}

	_, err = db.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	_, err = db.Collection(CollectionScreams).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userHandle", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create screams index: %w", err)
	}

	return nil
}
