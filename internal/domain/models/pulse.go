// internal/domain/models/pulse.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PulseResponse is one user's answers to a weekly pulse survey. One
// document per (org, user, week).
type PulseResponse struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID     primitive.ObjectID `bson:"org_id" json:"org_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Week      int                `bson:"week" json:"week"`
	Questions []string           `bson:"questions" json:"questions"`
	Answers   []string           `bson:"answers" json:"answers"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
