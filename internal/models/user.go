package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// User represents a user document. The handle is the natural key and doubles
// as the document id.
type User struct {
	Handle    string    `json:"handle" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"` // bcrypt hash, never serialized
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	ImageURL  string    `json:"imageUrl" bson:"imageUrl"`
	Bio       string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Website   string    `json:"website,omitempty" bson:"website,omitempty"`
	Location  string    `json:"location,omitempty" bson:"location,omitempty"`
	UserID    string    `json:"userId" bson:"userId"` // auth subject id
}

// SignupRequest defines the request body for user signup
type SignupRequest struct {
	Handle          string `json:"handle" validate:"required,min=1,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// LoginRequest defines the request body for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for a partial profile update.
// All fields are optional; blank fields are dropped, not cleared.
type UpdateProfileRequest struct {
	Bio      string `json:"bio"`
	Website  string `json:"website"`
	Location string `json:"location"`
}

// Details shapes the update into the fields that should actually be written.
// A website without a scheme gets an http:// prefix.
func (r *UpdateProfileRequest) Details() bson.M {
	details := bson.M{}
	if strings.TrimSpace(r.Bio) != "" {
		details["bio"] = r.Bio
	}
	if website := strings.TrimSpace(r.Website); website != "" {
		if strings.HasPrefix(website, "http") {
			details["website"] = website
		} else {
			details["website"] = "http://" + website
		}
	}
	if strings.TrimSpace(r.Location) != "" {
		details["location"] = r.Location
	}
	return details
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	Handle string `json:"handle"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
