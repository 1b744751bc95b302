package repositories

import (
	"context"

	"github.com/screamhq/screams-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	UpsertNotification(ctx context.Context, notification *models.Notification) error
	DeleteNotificationByID(ctx context.Context, id string) error
	GetNotificationsByRecipient(ctx context.Context, recipient string, limit int64) ([]models.Notification, error)
	MarkNotificationsRead(ctx context.Context, ids []string) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection(CollectionNotifications)}
}

// UpsertNotification writes a notification keyed by its triggering document's
// id. Redelivered events overwrite the same document, so retries are harmless.
func (r *MongoNotificationRepository) UpsertNotification(ctx context.Context, notification *models.Notification) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": notification.ID}, notification, opts)
	return err
}

// DeleteNotificationByID deletes a notification, silently succeeding when it
// does not exist
func (r *MongoNotificationRepository) DeleteNotificationByID(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// GetNotificationsByRecipient retrieves a user's most recent notifications
func (r *MongoNotificationRepository) GetNotificationsByRecipient(ctx context.Context, recipient string, limit int64) ([]models.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"recipient": recipient}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationsRead marks the given notifications as read in one batch
func (r *MongoNotificationRepository) MarkNotificationsRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{"$set": bson.M{"read": true}})
	return err
}
