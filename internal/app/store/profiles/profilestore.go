// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("user profile not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_profiles")}
}

func (s *Store) Get(ctx context.Context, orgID, userID primitive.ObjectID) (models.UserProfile, error) {
	var p models.UserProfile
	err := s.c.FindOne(ctx, bson.M{"org_id": orgID, "user_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

// Upsert writes the user's intake answers for the org, creating the
// document on first save.
func (s *Store) Upsert(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	now := time.Now().UTC()
	if p.Questions == nil {
		p.Questions = []string{}
	}
	if p.Answers == nil {
		p.Answers = []string{}
	}
	var out models.UserProfile
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"org_id": p.OrgID, "user_id": p.UserID},
		bson.M{
			"$set": bson.M{
				"questions":  p.Questions,
				"answers":    p.Answers,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"org_id":     p.OrgID,
				"user_id":    p.UserID,
				"created_at": now,
			},
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.UserProfile{}, err
	}
	return out, nil
}

// Delete removes one user's profile in the org.
func (s *Store) Delete(ctx context.Context, orgID, userID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"org_id": orgID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteForOrg removes every profile belonging to an organization.
func (s *Store) DeleteForOrg(ctx context.Context, orgID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"org_id": orgID})
	return err
}

// ListForOrg returns every profile in the organization. Admin view.
func (s *Store) ListForOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.UserProfile, error) {
	cur, err := s.c.Find(ctx, bson.M{"org_id": orgID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.UserProfile
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
