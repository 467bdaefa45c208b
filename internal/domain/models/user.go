// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account: students and instructors alike.
//
// NOTE:
//   - Orgs lists the organizations the user has joined, with the team the
//     user belongs to inside each (TeamID 0 means "not yet on a team").
//   - AdminOf lists organizations this user administers. It mirrors the
//     organization's admin field and is maintained best-effort (the create
//     path writes both documents sequentially, not transactionally).
//   - Deleting an account is a soft delete: identifying fields are
//     overwritten so references from historical documents stay resolvable.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	DisplayName  string             `bson:"display_name" json:"display_name"`
	PasswordHash string             `bson:"password_hash,omitempty" json:"-"`
	UserType     string             `bson:"user_type" json:"user_type"` // "admin" | "user"

	Orgs    []OrgMembership      `bson:"orgs" json:"orgs"`
	AdminOf []primitive.ObjectID `bson:"admin_of" json:"admin_of"`

	// Free-form profile details, all optional.
	Standing  string `bson:"standing,omitempty" json:"standing,omitempty"`
	Major     string `bson:"major,omitempty" json:"major,omitempty"`
	MBTI      string `bson:"mbti,omitempty" json:"mbti,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Workstyle string `bson:"workstyle,omitempty" json:"workstyle,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// OrgMembership records that a user belongs to an organization and,
// once assigned, which team they are on. Display data (org name, team
// name) is resolved at read time, never cached here.
type OrgMembership struct {
	OrgID  primitive.ObjectID `bson:"org_id" json:"org_id"`
	TeamID int                `bson:"team_id,omitempty" json:"team_id,omitempty"`
}
