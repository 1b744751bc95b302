package repositories

import (
	"context"
	"errors"

	"github.com/screamhq/screams-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrAlreadyLiked is returned when the (user, scream) pair already has a like
	ErrAlreadyLiked = errors.New("scream already liked")
	// ErrNotLiked is returned when no like exists for the (user, scream) pair
	ErrNotLiked = errors.New("scream not liked")
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userHandle, screamID string) error
	GetLikesByUserHandle(ctx context.Context, handle string) ([]models.Like, error)
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection(CollectionLikes)}
}

// CreateLike inserts a like. The unique (userHandle, screamId) index turns a
// concurrent duplicate into ErrAlreadyLiked instead of a second document.
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, like)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyLiked
	}
	return err
}

// DeleteLike removes the user's like on a scream, returning ErrNotLiked when
// there is none
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, userHandle, screamID string) error {
	err := r.collection.FindOneAndDelete(ctx, bson.M{"userHandle": userHandle, "screamId": screamID}).Err()
	if err == mongo.ErrNoDocuments {
		return ErrNotLiked
	}
	return err
}

// GetLikesByUserHandle retrieves all likes placed by a user
func (r *MongoLikeRepository) GetLikesByUserHandle(ctx context.Context, handle string) ([]models.Like, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userHandle": handle})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	likes := []models.Like{}
	if err = cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}
