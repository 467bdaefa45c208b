// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/teamhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound          = errors.New("organization not found")
	ErrDuplicateCode     = errors.New("access code already in use")
	ErrTeamNotFound      = errors.New("team not found")
	ErrAlreadyTeamMember = errors.New("user already on the team")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.NameCI = text.Fold(org.Name)
	if org.Members == nil {
		org.Members = []primitive.ObjectID{}
	}
	if org.Teams == nil {
		org.Teams = []models.Team{}
	}
	org.CreatedAt = now
	org.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, org); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateCode
		}
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Organization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (s *Store) GetByAccessCode(ctx context.Context, code string) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"access_code": code}).Decode(&org)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Organization{}, ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// Update modifies the organization's mutable fields.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, description string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if description != "" {
		set["description"] = description
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAccessCode installs a fresh join code. The sparse unique index on
// access_code surfaces collisions as ErrDuplicateCode so the caller can
// generate another code and retry.
func (s *Store) SetAccessCode(ctx context.Context, id primitive.ObjectID, code string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"access_code": code,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateCode
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) AddMember(ctx context.Context, orgID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": orgID},
		bson.M{
			"$addToSet": bson.M{"members": userID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveMember drops the user from the member roster and from every
// team. Team member refs exist in two stored shapes (bare ObjectID and
// legacy {_id, ...} documents), so the pull runs once per shape.
func (s *Store) RemoveMember(ctx context.Context, orgID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": orgID},
		bson.M{
			"$pull": bson.M{
				"members":           userID,
				"teams.$[].members": userID,
			},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": orgID},
		bson.M{"$pull": bson.M{
			"teams.$[].members": bson.M{"_id": userID},
		}})
	return err
}

// SetTeams replaces the full team layout, as produced by random team
// generation.
func (s *Store) SetTeams(ctx context.Context, orgID primitive.ObjectID, teams []models.Team) error {
	if teams == nil {
		teams = []models.Team{}
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": orgID},
		bson.M{"$set": bson.M{
			"teams":      teams,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTeam projects the one matching team out of the organization
// document.
func (s *Store) GetTeam(ctx context.Context, orgID primitive.ObjectID, teamID int) (models.Team, error) {
	var doc struct {
		Teams []models.Team `bson:"teams"`
	}
	err := s.c.FindOne(ctx,
		bson.M{"_id": orgID, "teams.team_id": teamID},
		options.FindOne().SetProjection(bson.M{"teams": bson.M{"$elemMatch": bson.M{"team_id": teamID}}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Team{}, ErrTeamNotFound
	}
	if err != nil {
		return models.Team{}, err
	}
	if len(doc.Teams) == 0 {
		return models.Team{}, ErrTeamNotFound
	}
	return doc.Teams[0], nil
}

func (s *Store) RenameTeam(ctx context.Context, orgID primitive.ObjectID, teamID int, name string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": orgID, "teams.team_id": teamID},
		bson.M{"$set": bson.M{
			"teams.$.name": name,
			"updated_at":   time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// AddTeamMember appends the user to the team's member list. The filter
// requires the team to exist without the user, in either stored ref
// shape, so concurrent adds converge on a single entry.
func (s *Store) AddTeamMember(ctx context.Context, orgID primitive.ObjectID, teamID int, userID primitive.ObjectID) error {
	ref := models.TeamMemberRef{ID: userID}
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":           orgID,
			"teams.team_id": teamID,
			"$nor": bson.A{
				bson.M{"teams": bson.M{"$elemMatch": bson.M{
					"team_id": teamID,
					"members": userID,
				}}},
				bson.M{"teams": bson.M{"$elemMatch": bson.M{
					"team_id":     teamID,
					"members._id": userID,
				}}},
			},
		},
		bson.M{
			"$push": bson.M{"teams.$.members": ref},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Distinguish "team missing" from "already a member".
		if _, terr := s.GetTeam(ctx, orgID, teamID); terr != nil {
			return terr
		}
		return ErrAlreadyTeamMember
	}
	return nil
}

// RemoveTeamMember drops the user from one team, covering both stored
// ref shapes.
func (s *Store) RemoveTeamMember(ctx context.Context, orgID primitive.ObjectID, teamID int, userID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": orgID, "teams.team_id": teamID},
		bson.M{
			"$pull": bson.M{"teams.$.members": userID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTeamNotFound
	}
	_, err = s.c.UpdateOne(ctx,
		bson.M{"_id": orgID, "teams.team_id": teamID},
		bson.M{"$pull": bson.M{
			"teams.$.members": bson.M{"_id": userID},
		}})
	return err
}
