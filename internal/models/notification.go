package models

import "time"

// Notification types
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

// Notification records that someone liked or commented on a user's scream.
// Its id is the id of the triggering Like or Comment, which makes creation
// idempotent under event redelivery and lets unlike cleanup delete by id.
// Notifications are written only by the reactor, never by request handlers.
type Notification struct {
	ID        string    `json:"notificationId" bson:"_id"`
	Recipient string    `json:"recipient" bson:"recipient"`
	Sender    string    `json:"sender" bson:"sender"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Type      string    `json:"type" bson:"type"`
	Read      bool      `json:"read" bson:"read"`
	ScreamID  string    `json:"screamId" bson:"screamId"`
}

// MarkNotificationsReadRequest is the id list posted to mark notifications read
type MarkNotificationsReadRequest []string
