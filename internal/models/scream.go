package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scream represents a short post, the primary content entity. The author's
// handle and image are denormalized onto it so the feed never joins against
// the users collection.
type Scream struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Body         string             `json:"body" bson:"body"`
	UserHandle   string             `json:"userHandle" bson:"userHandle"`
	UserImage    string             `json:"userImage" bson:"userImage"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	LikeCount    int                `json:"likeCount" bson:"likeCount"`
	CommentCount int                `json:"commentCount" bson:"commentCount"`
}

// ScreamDetails is a Scream together with its comments, returned by the
// single-scream endpoint.
type ScreamDetails struct {
	Scream
	Comments []Comment `json:"comments"`
}

// CreateScreamRequest defines the request body for creating a new scream
type CreateScreamRequest struct {
	Body string `json:"body" validate:"required"`
}
