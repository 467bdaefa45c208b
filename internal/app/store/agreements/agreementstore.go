// internal/app/store/agreements/agreementstore.go
package agreementstore

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

var ErrNotFound = errors.New("team agreement not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("team_agreements")}
}

func (s *Store) Get(ctx context.Context, orgID primitive.ObjectID) (models.TeamAgreement, error) {
	var a models.TeamAgreement
	err := s.c.FindOne(ctx, bson.M{"org_id": orgID}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TeamAgreement{}, ErrNotFound
	}
	if err != nil {
		return models.TeamAgreement{}, err
	}
	return a, nil
}

// Upsert writes the organization's working agreement in full, creating
// the document on first save.
func (s *Store) Upsert(ctx context.Context, a models.TeamAgreement) (models.TeamAgreement, error) {
	now := time.Now().UTC()
	if a.Goals == nil {
		a.Goals = []string{}
	}
	if a.MeetingTimes == nil {
		a.MeetingTimes = []models.MeetingSlot{}
	}
	if a.CommunicationChannels == nil {
		a.CommunicationChannels = []string{}
	}
	set := bson.M{
		"goals":                  a.Goals,
		"meeting_times":          a.MeetingTimes,
		"communication_channels": a.CommunicationChannels,
		"updated_at":             now,
	}
	if a.Pulse != nil {
		set["pulse"] = a.Pulse
	}
	var out models.TeamAgreement
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"org_id": a.OrgID},
		bson.M{
			"$set": set,
			"$setOnInsert": bson.M{
				"org_id":     a.OrgID,
				"created_at": now,
			},
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return models.TeamAgreement{}, err
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, orgID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"org_id": orgID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
