// internal/app/store/pulses/pulsestore.go
package pulsestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/teamhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound         = errors.New("pulse response not found")
	ErrAlreadySubmitted = errors.New("pulse already submitted for this week")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("pulse_responses")}
}

// Submit records one user's answers for a week. The unique
// (org, user, week) index rejects a second submission.
func (s *Store) Submit(ctx context.Context, resp models.PulseResponse) (models.PulseResponse, error) {
	resp.ID = primitive.NewObjectID()
	resp.CreatedAt = time.Now().UTC()
	if resp.Questions == nil {
		resp.Questions = []string{}
	}
	if resp.Answers == nil {
		resp.Answers = []string{}
	}
	if _, err := s.c.InsertOne(ctx, resp); err != nil {
		if wafflemongo.IsDup(err) {
			return models.PulseResponse{}, ErrAlreadySubmitted
		}
		return models.PulseResponse{}, err
	}
	return resp, nil
}

// GetForUserWeek returns one user's submission for a week.
func (s *Store) GetForUserWeek(ctx context.Context, orgID, userID primitive.ObjectID, week int) (models.PulseResponse, error) {
	var resp models.PulseResponse
	err := s.c.FindOne(ctx, bson.M{
		"org_id":  orgID,
		"user_id": userID,
		"week":    week,
	}).Decode(&resp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.PulseResponse{}, ErrNotFound
	}
	if err != nil {
		return models.PulseResponse{}, err
	}
	return resp, nil
}

// ListForWeek returns every submission in the org for a week, oldest
// first. Used by the admin view.
func (s *Store) ListForWeek(ctx context.Context, orgID primitive.ObjectID, week int) ([]models.PulseResponse, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"org_id": orgID, "week": week},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.PulseResponse
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListForUser returns every submission one user has made in the org,
// by week ascending.
func (s *Store) ListForUser(ctx context.Context, orgID, userID primitive.ObjectID) ([]models.PulseResponse, error) {
	cur, err := s.c.Find(ctx,
		bson.M{"org_id": orgID, "user_id": userID},
		options.Find().SetSort(bson.D{{Key: "week", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.PulseResponse
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteForOrg removes the organization's documents. Used when the
// organization itself is deleted.
func (s *Store) DeleteForOrg(ctx context.Context, orgID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"org_id": orgID})
	return err
}
