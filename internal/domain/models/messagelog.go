// internal/domain/models/messagelog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message highlight flags.
const (
	MsgFlagNone      = 0
	MsgFlagMeeting   = 1
	MsgFlagImportant = 2
)

// MessageLog is one team's chat history, created empty on first access.
type MessageLog struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID    primitive.ObjectID `bson:"org_id" json:"org_id"`
	TeamID   int                `bson:"team_id" json:"team_id"`
	Messages []Message          `bson:"messages" json:"messages"`
}

// Message is a single chat entry. Sender display data is resolved at
// read time from the users collection.
type Message struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Date    time.Time          `bson:"date" json:"date"`
	Sender  primitive.ObjectID `bson:"sender" json:"sender"`
	Content string             `bson:"content" json:"content"`
	Flag    int                `bson:"flag" json:"flag"`
}
