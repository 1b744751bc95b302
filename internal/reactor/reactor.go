package reactor

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/screamhq/screams-backend/internal/models"
	"github.com/screamhq/screams-backend/internal/repositories"
)

// Reactor keeps derived state consistent with source-of-truth documents: it
// writes notification records for likes and comments, repairs the author
// image denormalized onto screams, and cascades scream deletion to every
// dependent document. Counters are not maintained here; those are updated in
// the request path.
type Reactor struct {
	screamRepository       repositories.ScreamRepository
	notificationRepository repositories.NotificationRepository
}

// New creates a new Reactor
func New(screamRepo repositories.ScreamRepository, notifRepo repositories.NotificationRepository) *Reactor {
	return &Reactor{
		screamRepository:       screamRepo,
		notificationRepository: notifRepo,
	}
}

// Run consumes events from the source until the context is cancelled. A
// failed reaction is logged and dropped; the event source redelivers on
// reconnect and every reaction is idempotent, so no compensation is needed
// here.
func (r *Reactor) Run(ctx context.Context, source Source) error {
	events, err := source.Events(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := r.Handle(ctx, event); err != nil {
				log.Printf("reaction failed for %s/%s %s: %v", event.Collection, event.DocumentID, event.Op, err)
			}
		}
	}
}

// Handle dispatches one event to its reaction. Events outside the reaction
// table are dropped.
func (r *Reactor) Handle(ctx context.Context, event Event) error {
	switch {
	case event.Collection == repositories.CollectionLikes && event.Op == OpInsert:
		return r.onLikeCreated(ctx, event)
	case event.Collection == repositories.CollectionLikes && event.Op == OpDelete:
		return r.onLikeDeleted(ctx, event)
	case event.Collection == repositories.CollectionComments && event.Op == OpInsert:
		return r.onCommentCreated(ctx, event)
	case event.Collection == repositories.CollectionUsers && event.Op == OpUpdate:
		return r.onUserUpdated(ctx, event)
	case event.Collection == repositories.CollectionScreams && event.Op == OpDelete:
		return r.onScreamDeleted(ctx, event)
	}
	return nil
}

// onLikeCreated notifies the scream owner about a new like
func (r *Reactor) onLikeCreated(ctx context.Context, event Event) error {
	var like models.Like
	if err := bson.Unmarshal(event.After, &like); err != nil {
		return fmt.Errorf("failed to decode like: %w", err)
	}
	return r.notifyOwner(ctx, like.ScreamID, like.UserHandle, event.DocumentID, models.NotificationTypeLike)
}

// onLikeDeleted removes the notification the like produced. The notification
// shares the like's id, so this is a blind delete: a no-op when the like
// never notified anyone.
func (r *Reactor) onLikeDeleted(ctx context.Context, event Event) error {
	return r.notificationRepository.DeleteNotificationByID(ctx, event.DocumentID)
}

// onCommentCreated notifies the scream owner about a new comment. Comments
// have no delete path, so unlike likes there is no matching cleanup reaction.
func (r *Reactor) onCommentCreated(ctx context.Context, event Event) error {
	var comment models.Comment
	if err := bson.Unmarshal(event.After, &comment); err != nil {
		return fmt.Errorf("failed to decode comment: %w", err)
	}
	return r.notifyOwner(ctx, comment.ScreamID, comment.UserHandle, event.DocumentID, models.NotificationTypeComment)
}

// notifyOwner writes the notification for a like or comment on a scream. A
// concurrently deleted scream drops the notification silently, and acting on
// your own scream produces none. The notification id is the triggering
// document's id, making the write idempotent under event redelivery.
func (r *Reactor) notifyOwner(ctx context.Context, screamID, actorHandle, triggerID, notificationType string) error {
	scream, err := r.screamRepository.GetScreamByID(ctx, screamID)
	if err != nil {
		if err == repositories.ErrScreamNotFound {
			return nil
		}
		return err
	}
	if scream.UserHandle == actorHandle {
		return nil
	}

	// TODO: sender should probably be the acting user's handle, not the
	// owner's; clients only render recipient and type today, so confirm
	// before changing it.
	notification := &models.Notification{
		ID:        triggerID,
		Recipient: scream.UserHandle,
		Sender:    scream.UserHandle,
		CreatedAt: time.Now(),
		Type:      notificationType,
		Read:      false,
		ScreamID:  screamID,
	}
	return r.notificationRepository.UpsertNotification(ctx, notification)
}

// onUserUpdated repairs the author image denormalized onto the user's screams
// after a profile image change
func (r *Reactor) onUserUpdated(ctx context.Context, event Event) error {
	var after models.User
	if err := bson.Unmarshal(event.After, &after); err != nil {
		return fmt.Errorf("failed to decode user: %w", err)
	}

	// Skip the batch when the image demonstrably did not change. A missing
	// pre-image falls through to the repair, which is idempotent anyway.
	if len(event.Before) > 0 {
		var before models.User
		if err := bson.Unmarshal(event.Before, &before); err != nil {
			return fmt.Errorf("failed to decode user pre-image: %w", err)
		}
		if before.ImageURL == after.ImageURL {
			return nil
		}
	}

	return r.screamRepository.UpdateUserImage(ctx, after.Handle, after.ImageURL)
}

// onScreamDeleted cascades a scream deletion to its comments, likes and
// notifications in one atomic batch
func (r *Reactor) onScreamDeleted(ctx context.Context, event Event) error {
	return r.screamRepository.DeleteDependents(ctx, event.DocumentID)
}
