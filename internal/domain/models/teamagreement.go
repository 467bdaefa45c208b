// internal/domain/models/teamagreement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamAgreement is the per-organization working agreement: goals, weekly
// meeting slots, communication channels, and when the pulse survey runs.
type TeamAgreement struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID                 primitive.ObjectID `bson:"org_id" json:"org_id"`
	Goals                 []string           `bson:"goals" json:"goals"`
	MeetingTimes          []MeetingSlot      `bson:"meeting_times" json:"meeting_times"`
	CommunicationChannels []string           `bson:"communication_channels" json:"communication_channels"`
	Pulse                 *PulseTime         `bson:"pulse,omitempty" json:"pulse,omitempty"`
	CreatedAt             time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time          `bson:"updated_at" json:"updated_at"`
}

// MeetingSlot is a recurring weekly meeting window.
type MeetingSlot struct {
	Weekday     int `bson:"weekday" json:"weekday"` // 0 = Sunday
	StartHour   int `bson:"start_hour" json:"start_hour"`
	StartMinute int `bson:"start_minute" json:"start_minute"`
	EndHour     int `bson:"end_hour" json:"end_hour"`
	EndMinute   int `bson:"end_minute" json:"end_minute"`
}

// PulseTime is the weekly moment the pulse survey is scheduled for.
type PulseTime struct {
	Weekday int `bson:"weekday" json:"weekday"`
	Hour    int `bson:"hour" json:"hour"`
	Minute  int `bson:"minute" json:"minute"`
}
