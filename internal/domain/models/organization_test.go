package models_test

import (
	"testing"

	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTeamMemberRef_DecodesBothShapes(t *testing.T) {
	bare := primitive.NewObjectID()
	legacy := primitive.NewObjectID()

	raw, err := bson.Marshal(bson.M{
		"team_id": 1,
		"name":    "Team 1",
		"members": bson.A{
			bare,
			bson.M{"_id": legacy, "name": "Legacy Member"},
		},
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var team models.Team
	if err := bson.Unmarshal(raw, &team); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(team.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(team.Members))
	}
	if team.Members[0].ID != bare {
		t.Errorf("bare ref: expected %v, got %v", bare, team.Members[0].ID)
	}
	if team.Members[1].ID != legacy {
		t.Errorf("legacy ref: expected %v, got %v", legacy, team.Members[1].ID)
	}
}

func TestTeamMemberRef_EncodesCanonicalShape(t *testing.T) {
	id := primitive.NewObjectID()
	team := models.Team{
		TeamID:  2,
		Name:    "Team 2",
		Members: []models.TeamMemberRef{{ID: id}},
	}

	raw, err := bson.Marshal(team)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var doc struct {
		Members []primitive.ObjectID `bson:"members"`
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal as bare ids failed: %v", err)
	}
	if len(doc.Members) != 1 || doc.Members[0] != id {
		t.Errorf("expected bare objectid encoding, got %v", doc.Members)
	}
}

func TestTeamMemberRef_MarshalJSON(t *testing.T) {
	id := primitive.NewObjectID()
	ref := models.TeamMemberRef{ID: id}
	out, err := ref.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	want := `"` + id.Hex() + `"`
	if string(out) != want {
		t.Errorf("expected %s, got %s", want, out)
	}
}
