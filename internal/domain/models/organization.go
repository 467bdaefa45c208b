// internal/domain/models/organization.go
package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is a class: an admin, a flat member list, and embedded
// teams. Per-team documents (charters, boards, message logs, assignment
// slices) live in their own collections keyed by (org_id, team_id) so the
// organization document stays small.
//
// Invariant: every user in a team's Members must also appear in the
// organization's Members.
type Organization struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	AccessCode  string             `bson:"access_code,omitempty" json:"-"`
	Admin       primitive.ObjectID `bson:"admin" json:"admin"`

	Members []primitive.ObjectID `bson:"members" json:"members"`
	Teams   []Team               `bson:"teams" json:"teams"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Team is an embedded sub-document of Organization. TeamID is scoped to
// the organization (1, 2, 3, ...), not globally unique.
type Team struct {
	TeamID  int             `bson:"team_id" json:"team_id"`
	Name    string          `bson:"name" json:"name"`
	Members []TeamMemberRef `bson:"members" json:"members"`
}

// TeamMemberRef is a reference to a user inside a team's member list.
//
// Earlier generations of the data stored team members either as bare user
// ObjectIDs or as denormalized {_id, name} documents. Decoding accepts
// both shapes; encoding always writes the bare ObjectID, which is the
// canonical representation. Comparison is on the identifier only.
type TeamMemberRef struct {
	ID primitive.ObjectID
}

// UnmarshalBSONValue accepts either a bare ObjectID or a legacy embedded
// document carrying an _id field.
func (r *TeamMemberRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeObjectID:
		oid, ok := raw.ObjectIDOK()
		if !ok {
			return fmt.Errorf("team member ref: malformed objectid")
		}
		r.ID = oid
		return nil
	case bson.TypeEmbeddedDocument:
		var legacy struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := raw.Unmarshal(&legacy); err != nil {
			return fmt.Errorf("team member ref: %w", err)
		}
		r.ID = legacy.ID
		return nil
	default:
		return fmt.Errorf("team member ref: unexpected bson type %s", t)
	}
}

// MarshalBSONValue always writes the canonical bare ObjectID.
func (r TeamMemberRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.ID)
}

// MarshalJSON renders the reference as its hex identifier.
func (r TeamMemberRef) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.ID.Hex() + `"`), nil
}
