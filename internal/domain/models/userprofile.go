// internal/domain/models/userprofile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserProfile holds a user's free-form intake answers for one
// organization. One document per (org, user).
type UserProfile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID     primitive.ObjectID `bson:"org_id" json:"org_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Questions []string           `bson:"questions" json:"questions"`
	Answers   []string           `bson:"answers" json:"answers"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
