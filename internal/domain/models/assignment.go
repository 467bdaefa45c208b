// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentSet is the single per-organization document holding every
// assignment definition plus each team's working copy of it. Team slices
// are created lazily the first time a team lists its assignments, never
// when an admin defines the assignment.
type AssignmentSet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrgID       primitive.ObjectID `bson:"org_id" json:"org_id"`
	Assignments []Assignment       `bson:"assignments" json:"assignments"`

	// LeaderCounters drives round-robin leader selection, keyed by the
	// decimal team id. Each created team slice consumes one tick; the
	// leader index is the tick modulo the team size.
	LeaderCounters map[string]int `bson:"leader_counters,omitempty" json:"-"`
}

// Assignment is a definition created by the organization admin.
type Assignment struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	DueDate     *time.Time         `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Teams       []AssignmentTeam   `bson:"teams" json:"teams"`
}

// AssignmentTeam is one team's slice of an assignment: a leader picked
// round-robin at creation time and the team's todo list. At most one
// slice exists per (assignment, team).
type AssignmentTeam struct {
	TeamID int                `bson:"team_id" json:"team_id"`
	Leader primitive.ObjectID `bson:"leader" json:"leader"`
	Todos  []Todo             `bson:"todos" json:"todos"`
}

// Todo is a single task inside a team's assignment slice. Todos are
// unordered at rest; listings sort by due date ascending.
type Todo struct {
	ID        primitive.ObjectID  `bson:"_id" json:"id"`
	Content   string              `bson:"content" json:"content"`
	Assignee  *primitive.ObjectID `bson:"assignee,omitempty" json:"assignee,omitempty"`
	DueDate   *time.Time          `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Completed bool                `bson:"completed" json:"completed"`
}
