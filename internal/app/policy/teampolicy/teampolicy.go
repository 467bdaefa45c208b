// internal/app/policy/teampolicy.go
package teampolicy

import (
	"context"

	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IsTeamMember reports whether userID is on team teamID of organization
// orgID. A missing organization or team is the normal "not a member"
// outcome, not an error; errors are reserved for store failures. The
// check has no side effects, so gates can run it before any mutating
// operation without creating documents for unauthorized callers.
//
// Team member entries may be stored as bare user references or as legacy
// {_id, name} documents; comparison is on the identifier only (handled
// by models.TeamMemberRef decoding).
func IsTeamMember(ctx context.Context, db *mongo.Database, userID, orgID primitive.ObjectID, teamID int) (bool, error) {
	team, err := findTeam(ctx, db, orgID, teamID)
	if err != nil {
		return false, err
	}
	if team == nil {
		return false, nil
	}
	for _, m := range team.Members {
		if m.ID == userID {
			return true, nil
		}
	}
	return false, nil
}

// IsOrgAdmin reports whether userID administers the organization. The
// comparison is identifier equality against the organization's admin
// reference; the admin does not need to appear in the member list.
func IsOrgAdmin(ctx context.Context, db *mongo.Database, userID, orgID primitive.ObjectID) (bool, error) {
	n, err := db.Collection("organizations").CountDocuments(ctx, bson.M{
		"_id":   orgID,
		"admin": userID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Member is a team roster entry with display data resolved from the
// users collection at read time.
type Member struct {
	ID          primitive.ObjectID `json:"id"`
	DisplayName string             `json:"display_name"`
	Email       string             `json:"email"`
}

// Members returns the resolved roster for (orgID, teamID) in the team's
// stored order. Returns (nil, nil) when the organization or team does
// not exist. Users whose documents have vanished keep their identifier
// with empty display fields.
func Members(ctx context.Context, db *mongo.Database, orgID primitive.ObjectID, teamID int) ([]Member, error) {
	team, err := findTeam(ctx, db, orgID, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(team.Members))
	for _, m := range team.Members {
		ids = append(ids, m.ID)
	}
	resolved, err := resolveUsers(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(team.Members))
	for _, ref := range team.Members {
		m := Member{ID: ref.ID}
		if u, ok := resolved[ref.ID]; ok {
			m.DisplayName = u.DisplayName
			m.Email = u.Email
		}
		members = append(members, m)
	}
	return members, nil
}

// findTeam loads just the matching team sub-document via $elemMatch.
// Returns (nil, nil) when the organization or team is absent.
func findTeam(ctx context.Context, db *mongo.Database, orgID primitive.ObjectID, teamID int) (*models.Team, error) {
	opts := options.FindOne().SetProjection(bson.M{
		"teams": bson.M{"$elemMatch": bson.M{"team_id": teamID}},
	})
	var doc struct {
		Teams []models.Team `bson:"teams"`
	}
	err := db.Collection("organizations").FindOne(ctx, bson.M{"_id": orgID}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(doc.Teams) == 0 {
		return nil, nil
	}
	return &doc.Teams[0], nil
}

func resolveUsers(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	result := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	cur, err := db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, err
		}
		result[u.ID] = u
	}
	return result, cur.Err()
}
