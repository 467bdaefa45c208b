// internal/app/store/charters/charterstore.go
package charterstore

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
	ErrNotFound        = errors.New("charter not found")
	ErrSectionNotFound = errors.New("charter section not found")
	ErrSectionExists   = errors.New("charter section already exists")
)

// BaselineSections are seeded into every new charter, incomplete. Each
// one completing bumps the charter's base count exactly once.
var BaselineSections = []string{"Meeting Times", "Goals", "Communication"}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("charters")}
}

// GetOrCreate returns the team's charter, seeding it with the baseline
// sections on first access. The unique (org_id, team_id) index makes
// concurrent first accesses converge on one document.
func (s *Store) GetOrCreate(ctx context.Context, orgID primitive.ObjectID, teamID int) (models.Charter, error) {
	seed := make([]models.CharterSection, 0, len(BaselineSections))
	for _, name := range BaselineSections {
		seed = append(seed, models.CharterSection{Name: name})
	}
	var ch models.Charter
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"org_id": orgID, "team_id": teamID},
		bson.M{"$setOnInsert": bson.M{
			"org_id":     orgID,
			"team_id":    teamID,
			"base_count": 0,
			"sections":   seed,
		}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&ch)
	if err != nil {
		return models.Charter{}, err
	}
	return ch, nil
}

// SectionUpdate carries the editable pieces of a section.
type SectionUpdate struct {
	Content      *string
	MeetingTimes []time.Time
}

// UpdateSection edits one section's content by name.
func (s *Store) UpdateSection(ctx context.Context, orgID primitive.ObjectID, teamID int, name string, upd SectionUpdate) error {
	set := bson.M{}
	if upd.Content != nil {
		set["sections.$.content"] = *upd.Content
	}
	if upd.MeetingTimes != nil {
		set["sections.$.meeting_times"] = upd.MeetingTimes
	}
	if len(set) == 0 {
		return nil
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID, "team_id": teamID, "sections.name": name},
		bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// CompleteSection marks a section done. The filter only matches while
// the section is still incomplete, so the base count increments once no
// matter how many times completion is requested.
func (s *Store) CompleteSection(ctx context.Context, orgID primitive.ObjectID, teamID int, name string) error {
	baseline := false
	for _, b := range BaselineSections {
		if b == name {
			baseline = true
			break
		}
	}
	update := bson.M{"$set": bson.M{"sections.$.completed": true}}
	if baseline {
		update["$inc"] = bson.M{"base_count": 1}
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"org_id":  orgID,
			"team_id": teamID,
			"sections": bson.M{"$elemMatch": bson.M{
				"name":      name,
				"completed": false,
			}},
		},
		update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Already complete is fine; section truly missing is not.
		exists, err := s.sectionExists(ctx, orgID, teamID, name)
		if err != nil {
			return err
		}
		if !exists {
			return ErrSectionNotFound
		}
	}
	return nil
}

// AddSection appends a custom section. User-added sections start out
// completed; only the seeded baseline tracks completion.
func (s *Store) AddSection(ctx context.Context, orgID primitive.ObjectID, teamID int, name, content string) error {
	section := models.CharterSection{
		Name:      name,
		Content:   content,
		Completed: true,
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"org_id":        orgID,
			"team_id":       teamID,
			"sections.name": bson.M{"$ne": name},
		},
		bson.M{"$push": bson.M{"sections": section}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		exists, err := s.sectionExists(ctx, orgID, teamID, name)
		if err != nil {
			return err
		}
		if exists {
			return ErrSectionExists
		}
		return ErrNotFound
	}
	return nil
}

// DeleteSection removes a custom section. Baseline sections cannot be
// deleted.
func (s *Store) DeleteSection(ctx context.Context, orgID primitive.ObjectID, teamID int, name string) error {
	for _, b := range BaselineSections {
		if b == name {
			return ErrSectionNotFound
		}
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID, "team_id": teamID},
		bson.M{"$pull": bson.M{"sections": bson.M{"name": name}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrSectionNotFound
	}
	return nil
}

func (s *Store) sectionExists(ctx context.Context, orgID primitive.ObjectID, teamID int, name string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"org_id":        orgID,
		"team_id":       teamID,
		"sections.name": name,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteForOrg removes the organization's documents. Used when the
// organization itself is deleted.
func (s *Store) DeleteForOrg(ctx context.Context, orgID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"org_id": orgID})
	return err
}
