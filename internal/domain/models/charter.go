// internal/domain/models/charter.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Charter is one team's charter document, created on first access seeded
// with the baseline sections. BaseCount tracks how many of the baseline
// sections have been completed; it only ever increments (a named baseline
// section transitioning incomplete -> complete bumps it exactly once).
type Charter struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID     primitive.ObjectID `bson:"org_id" json:"org_id"`
	TeamID    int                `bson:"team_id" json:"team_id"`
	BaseCount int                `bson:"base_count" json:"base_count"`
	Sections  []CharterSection   `bson:"sections" json:"sections"`
}

// CharterSection is a named charter entry. Sections are identified by
// name, not id; user-added sections start out completed, baseline ones
// incomplete.
type CharterSection struct {
	Name         string      `bson:"name" json:"name"`
	Content      string      `bson:"content" json:"content"`
	MeetingTimes []time.Time `bson:"meeting_times,omitempty" json:"meeting_times,omitempty"`
	Completed    bool        `bson:"completed" json:"completed"`
}
