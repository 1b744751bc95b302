package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a scream. Comments are create-only; there
// is no update or delete path.
type Comment struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Body       string             `json:"body" bson:"body"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	ScreamID   string             `json:"screamId" bson:"screamId"`
	UserHandle string             `json:"userHandle" bson:"userHandle"`
	UserImage  string             `json:"userImage" bson:"userImage"`
}

// CreateCommentRequest defines the request body for creating a comment
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}
