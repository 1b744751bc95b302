package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Like marks that a user liked a scream. Uniqueness per (userHandle, screamId)
// is enforced by a unique compound index, not by an application-level check.
type Like struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ScreamID   string             `json:"screamId" bson:"screamId"`
	UserHandle string             `json:"userHandle" bson:"userHandle"`
}
