// internal/app/store/users/userstore.go
package userstore

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
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	ErrNotFound       = errors.New("user not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.EmailCI = text.Fold(u.Email)
	if u.UserType == "" {
		u.UserType = "user"
	}
	if u.Orgs == nil {
		u.Orgs = []models.OrgMembership{}
	}
	if u.AdminOf == nil {
		u.AdminOf = []primitive.ObjectID{}
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail looks the user up by the case-folded email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByIDs loads multiple users by their ObjectIDs.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ProfileUpdate carries the mutable account fields. Nil pointers leave
// the stored value untouched; empty strings clear it.
type ProfileUpdate struct {
	DisplayName *string
	Standing    *string
	Major       *string
	MBTI        *string
	Phone       *string
	Workstyle   *string
}

func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.DisplayName != nil {
		set["display_name"] = *upd.DisplayName
	}
	if upd.Standing != nil {
		set["standing"] = *upd.Standing
	}
	if upd.Major != nil {
		set["major"] = *upd.Major
	}
	if upd.MBTI != nil {
		set["mbti"] = *upd.MBTI
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Workstyle != nil {
		set["workstyle"] = *upd.Workstyle
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

func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddOrgMembership records that the user joined an organization. The
// filter excludes users already carrying the membership, so a repeated
// join leaves exactly one entry.
func (s *Store) AddOrgMembership(ctx context.Context, userID, orgID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID, "orgs.org_id": bson.M{"$ne": orgID}},
		bson.M{
			"$push": bson.M{"orgs": models.OrgMembership{OrgID: orgID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// SetTeam records the team the user was placed on inside an org.
func (s *Store) SetTeam(ctx context.Context, userID, orgID primitive.ObjectID, teamID int) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID, "orgs.org_id": orgID},
		bson.M{"$set": bson.M{
			"orgs.$.team_id": teamID,
			"updated_at":     time.Now().UTC(),
		}})
	return err
}

// SetTeamForUsers assigns one team to a batch of users within an org.
func (s *Store) SetTeamForUsers(ctx context.Context, userIDs []primitive.ObjectID, orgID primitive.ObjectID, teamID int) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": userIDs}, "orgs.org_id": orgID},
		bson.M{"$set": bson.M{
			"orgs.$.team_id": teamID,
			"updated_at":     time.Now().UTC(),
		}})
	return err
}

func (s *Store) RemoveOrgMembership(ctx context.Context, userID, orgID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"orgs": bson.M{"org_id": orgID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// RemoveOrgFromAll strips an organization from every member and admin
// record. Used when the org is deleted.
func (s *Store) RemoveOrgFromAll(ctx context.Context, orgID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{},
		bson.M{"$pull": bson.M{
			"orgs":     bson.M{"org_id": orgID},
			"admin_of": orgID,
		}})
	return err
}

func (s *Store) AddAdminOf(ctx context.Context, userID, orgID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$addToSet": bson.M{"admin_of": orgID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}

// SoftDelete anonymizes the account in place. Historical documents keep
// referencing the id, which now resolves to a tombstone display name.
// The folded email is replaced with the hex id so the unique index
// stays satisfied.
func (s *Store) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"email":         "",
			"email_ci":      "deleted:" + id.Hex(),
			"display_name":  "Deleted User",
			"password_hash": "",
			"updated_at":    time.Now().UTC(),
		},
		"$unset": bson.M{
			"standing":  "",
			"major":     "",
			"mbti":      "",
			"phone":     "",
			"workstyle": "",
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
