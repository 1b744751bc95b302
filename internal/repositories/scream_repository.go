package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/screamhq/screams-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrScreamNotFound is returned when no scream document matches the id
var ErrScreamNotFound = errors.New("scream not found")

// ScreamRepository defines the interface for scream data operations
type ScreamRepository interface {
	CreateScream(ctx context.Context, scream *models.Scream) error
	GetScreamByID(ctx context.Context, id string) (*models.Scream, error)
	GetAllScreams(ctx context.Context) ([]models.Scream, error)
	GetScreamsByUserHandle(ctx context.Context, handle string) ([]models.Scream, error)
	DeleteScream(ctx context.Context, id string) error
	IncrementLikeCount(ctx context.Context, id string) error
	DecrementLikeCount(ctx context.Context, id string) error
	IncrementCommentCount(ctx context.Context, id string) error
	UpdateUserImage(ctx context.Context, handle, imageURL string) error
	DeleteDependents(ctx context.Context, screamID string) error
}

// MongoScreamRepository implements ScreamRepository for MongoDB
type MongoScreamRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoScreamRepository creates a new MongoScreamRepository
func NewMongoScreamRepository(db *mongo.Database) *MongoScreamRepository {
	return &MongoScreamRepository{db: db, collection: db.Collection(CollectionScreams)}
}

// CreateScream creates a new scream with zeroed counters
func (r *MongoScreamRepository) CreateScream(ctx context.Context, scream *models.Scream) error {
	scream.ID = primitive.NewObjectID()
	scream.CreatedAt = time.Now()
	scream.LikeCount = 0
	scream.CommentCount = 0
	_, err := r.collection.InsertOne(ctx, scream)
	return err
}

// GetScreamByID retrieves a scream by ID
func (r *MongoScreamRepository) GetScreamByID(ctx context.Context, id string) (*models.Scream, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrScreamNotFound
	}

	var scream models.Scream
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&scream)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrScreamNotFound
		}
		return nil, err
	}
	return &scream, nil
}

// GetAllScreams retrieves all screams ordered by creation time, newest first
func (r *MongoScreamRepository) GetAllScreams(ctx context.Context) ([]models.Scream, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	screams := []models.Scream{}
	if err = cursor.All(ctx, &screams); err != nil {
		return nil, err
	}
	return screams, nil
}

// GetScreamsByUserHandle retrieves all screams authored by a user, newest first
func (r *MongoScreamRepository) GetScreamsByUserHandle(ctx context.Context, handle string) ([]models.Scream, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userHandle": handle}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	screams := []models.Scream{}
	if err = cursor.All(ctx, &screams); err != nil {
		return nil, err
	}
	return screams, nil
}

// DeleteScream deletes the scream document only. Dependent comments, likes and
// notifications are cascaded by the reactor when the delete event arrives.
func (r *MongoScreamRepository) DeleteScream(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrScreamNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrScreamNotFound
	}
	return nil
}

// IncrementLikeCount increments the like count of a scream
func (r *MongoScreamRepository) IncrementLikeCount(ctx context.Context, id string) error {
	return r.incField(ctx, id, "likeCount", 1)
}

// DecrementLikeCount decrements the like count of a scream
func (r *MongoScreamRepository) DecrementLikeCount(ctx context.Context, id string) error {
	return r.incField(ctx, id, "likeCount", -1)
}

// IncrementCommentCount bumps the comment count, failing with
// ErrScreamNotFound when the scream is gone. Existence check and counter
// update are one conditional write, so a missing scream never leaves a
// stray increment behind.
func (r *MongoScreamRepository) IncrementCommentCount(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrScreamNotFound
	}

	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"commentCount": 1}}).Err()
	if err == mongo.ErrNoDocuments {
		return ErrScreamNotFound
	}
	return err
}

func (r *MongoScreamRepository) incField(ctx context.Context, id, field string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrScreamNotFound
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{field: delta}})
	return err
}

// UpdateUserImage rewrites the denormalized author image on every scream the
// user authored
func (r *MongoScreamRepository) UpdateUserImage(ctx context.Context, handle, imageURL string) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{"userHandle": handle}, bson.M{"$set": bson.M{"userImage": imageURL}})
	return err
}

// DeleteDependents removes every comment, like and notification referencing
// the scream in a single transaction: either the whole cascade commits or none
// of it does.
func (r *MongoScreamRepository) DeleteDependents(ctx context.Context, screamID string) error {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"screamId": screamID}
		for _, name := range []string{CollectionComments, CollectionLikes, CollectionNotifications} {
			if _, err := r.db.Collection(name).DeleteMany(sc, filter); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}
