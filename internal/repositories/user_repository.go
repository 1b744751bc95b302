package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/screamhq/screams-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrUserNotFound is returned when no user document matches the lookup
	ErrUserNotFound = errors.New("user not found")
	// ErrHandleTaken is returned when a signup collides on the handle
	ErrHandleTaken = errors.New("handle already in use")
	// ErrEmailTaken is returned when a signup collides on the email
	ErrEmailTaken = errors.New("email already in use")
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByHandle(ctx context.Context, handle string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUserID(ctx context.Context, userID string) (*models.User, error)
	UpdateDetails(ctx context.Context, handle string, details bson.M) error
	UpdateImageURL(ctx context.Context, handle, imageURL string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection(CollectionUsers)}
}

// CreateUser inserts a new user document. The handle is the document id, so a
// duplicate handle and a duplicate email are both rejected by the store in the
// same write that creates the account: no partial signup state.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "email") {
			return ErrEmailTaken
		}
		return ErrHandleTaken
	}
	return err
}

// GetUserByHandle retrieves a user by handle
func (r *MongoUserRepository) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": handle}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUserID retrieves a user by auth subject id
func (r *MongoUserRepository) GetUserByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateDetails applies a partial profile update to the user document
func (r *MongoUserRepository) UpdateDetails(ctx context.Context, handle string, details bson.M) error {
	if len(details) == 0 {
		return nil
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": handle}, bson.M{"$set": details})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateImageURL sets the user's profile image URL
func (r *MongoUserRepository) UpdateImageURL(ctx context.Context, handle, imageURL string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": handle}, bson.M{"$set": bson.M{"imageUrl": imageURL}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
