// internal/app/store/messages/messagestore.go
package messagestore

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

var (
	ErrNotFound        = errors.New("message log not found")
	ErrMessageNotFound = errors.New("message not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("message_logs")}
}

// GetOrCreate returns the team's message log, creating it empty on
// first access.
func (s *Store) GetOrCreate(ctx context.Context, orgID primitive.ObjectID, teamID int) (models.MessageLog, error) {
	var log models.MessageLog
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"org_id": orgID, "team_id": teamID},
		bson.M{"$setOnInsert": bson.M{
			"org_id":   orgID,
			"team_id":  teamID,
			"messages": []models.Message{},
		}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&log)
	if err != nil {
		return models.MessageLog{}, err
	}
	return log, nil
}

// Add appends a message, creating the log if needed.
func (s *Store) Add(ctx context.Context, orgID primitive.ObjectID, teamID int, msg models.Message) (models.Message, error) {
	msg.ID = primitive.NewObjectID()
	msg.Date = time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID, "team_id": teamID},
		bson.M{"$push": bson.M{"messages": msg}},
		options.Update().SetUpsert(true))
	if err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// SetFlag changes a message's highlight flag in place.
func (s *Store) SetFlag(ctx context.Context, orgID primitive.ObjectID, teamID int, messageID primitive.ObjectID, flag int) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID, "team_id": teamID, "messages._id": messageID},
		bson.M{"$set": bson.M{"messages.$.flag": flag}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Delete removes one message from the log.
func (s *Store) Delete(ctx context.Context, orgID primitive.ObjectID, teamID int, messageID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID, "team_id": teamID},
		bson.M{"$pull": bson.M{"messages": bson.M{"_id": messageID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// DeleteForOrg removes the organization's documents. Used when the
// organization itself is deleted.
func (s *Store) DeleteForOrg(ctx context.Context, orgID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"org_id": orgID})
	return err
}
