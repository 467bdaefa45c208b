// internal/domain/models/board.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Board is one team's post board, created empty on first access.
type Board struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID  primitive.ObjectID `bson:"org_id" json:"org_id"`
	TeamID int                `bson:"team_id" json:"team_id"`
	Posts  []Post             `bson:"posts" json:"posts"`
}

// Post is a board entry with its reactions.
type Post struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Poster    primitive.ObjectID `bson:"poster" json:"poster"`
	Date      time.Time          `bson:"date" json:"date"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Reactions []Reaction         `bson:"reactions" json:"reactions"`
}

// Reaction groups the users who reacted to a post with one emoji. The
// emoji is stored canonicalized to its first code point so that visually
// identical glyphs with different encodings collapse to one entry. An
// entry with no remaining users is removed.
type Reaction struct {
	Emoji string               `bson:"emoji" json:"emoji"`
	Users []primitive.ObjectID `bson:"users" json:"users"`
}
