// internal/app/store/boards/boardstore.go
package boardstore

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
	ErrNotFound     = errors.New("board not found")
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyEmoji   = errors.New("empty emoji")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("boards")}
}

// GetOrCreate returns the team's board, creating it empty on first
// access.
func (s *Store) GetOrCreate(ctx context.Context, orgID primitive.ObjectID, teamID int) (models.Board, error) {
	var b models.Board
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"org_id": orgID, "team_id": teamID},
		bson.M{"$setOnInsert": bson.M{
			"org_id":  orgID,
			"team_id": teamID,
			"posts":   []models.Post{},
		}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		return models.Board{}, err
	}
	return b, nil
}

// AddPost appends a post to the board, creating the board if needed.
func (s *Store) AddPost(ctx context.Context, orgID primitive.ObjectID, teamID int, post models.Post) (models.Post, error) {
	post.ID = primitive.NewObjectID()
	post.Date = time.Now().UTC()
	if post.Reactions == nil {
		post.Reactions = []models.Reaction{}
	}
	_, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID, "team_id": teamID},
		bson.M{"$push": bson.M{"posts": post}},
		options.Update().SetUpsert(true))
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// DeletePost removes one post. Only the poster (checked by the caller)
// or an admin deletes posts.
func (s *Store) DeletePost(ctx context.Context, orgID primitive.ObjectID, teamID int, postID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID, "team_id": teamID},
		bson.M{"$pull": bson.M{"posts": bson.M{"_id": postID}}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// GetPost projects one post out of the board document.
func (s *Store) GetPost(ctx context.Context, orgID primitive.ObjectID, teamID int, postID primitive.ObjectID) (models.Post, error) {
	var doc struct {
		Posts []models.Post `bson:"posts"`
	}
	err := s.c.FindOne(ctx,
		bson.M{"org_id": orgID, "team_id": teamID, "posts._id": postID},
		options.FindOne().SetProjection(bson.M{
			"posts": bson.M{"$elemMatch": bson.M{"_id": postID}},
		}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	if len(doc.Posts) == 0 {
		return models.Post{}, ErrPostNotFound
	}
	return doc.Posts[0], nil
}

// CanonicalEmoji reduces a reaction to its first code point, so
// composed sequences and trailing text collapse onto one stored key.
func CanonicalEmoji(s string) (string, error) {
	for _, r := range s {
		return string(r), nil
	}
	return "", ErrEmptyEmoji
}

// ToggleReaction adds the user to a post's reaction entry for the
// emoji, or removes them if already present. Each step is a single
// conditional update, so concurrent toggles never lose users or leave
// duplicate entries:
//
//  1. pull the user from a matching entry (the toggle-off path), then
//     sweep entries left without users;
//  2. otherwise add the user to an existing entry for the emoji;
//  3. otherwise push a brand-new entry.
//
// Returns true when the user ends up reacted, false when removed.
func (s *Store) ToggleReaction(ctx context.Context, orgID primitive.ObjectID, teamID int, postID primitive.ObjectID, emoji string, userID primitive.ObjectID) (bool, error) {
	emoji, err := CanonicalEmoji(emoji)
	if err != nil {
		return false, err
	}

	postFilter := bson.M{
		"org_id":  orgID,
		"team_id": teamID,
		"posts": bson.M{"$elemMatch": bson.M{
			"_id": postID,
			"reactions": bson.M{"$elemMatch": bson.M{
				"emoji": emoji,
				"users": userID,
			}},
		}},
	}
	res, err := s.c.UpdateOne(ctx, postFilter,
		bson.M{"$pull": bson.M{"posts.$[p].reactions.$[r].users": userID}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"p._id": postID},
				bson.M{"r.emoji": emoji},
			},
		}))
	if err != nil {
		return false, err
	}
	if res.ModifiedCount > 0 {
		// Toggled off; drop any entry left without users.
		_, err = s.c.UpdateOne(ctx,
			bson.M{"org_id": orgID, "team_id": teamID, "posts._id": postID},
			bson.M{"$pull": bson.M{"posts.$.reactions": bson.M{"users": bson.M{"$size": 0}}}})
		return false, err
	}

	for {
		res, err = s.c.UpdateOne(ctx,
			bson.M{
				"org_id":  orgID,
				"team_id": teamID,
				"posts": bson.M{"$elemMatch": bson.M{
					"_id":             postID,
					"reactions.emoji": emoji,
				}},
			},
			bson.M{"$addToSet": bson.M{"posts.$[p].reactions.$[r].users": userID}},
			options.Update().SetArrayFilters(options.ArrayFilters{
				Filters: []interface{}{
					bson.M{"p._id": postID},
					bson.M{"r.emoji": emoji},
				},
			}))
		if err != nil {
			return false, err
		}
		if res.MatchedCount > 0 {
			// Added, or the entry already held the user because a
			// concurrent toggle won; either way the user is reacted.
			return true, nil
		}

		// No entry for the emoji yet. The push only matches while
		// that is still true, so two racing first reactions cannot
		// both create an entry.
		res, err = s.c.UpdateOne(ctx,
			bson.M{
				"org_id":  orgID,
				"team_id": teamID,
				"posts": bson.M{"$elemMatch": bson.M{
					"_id":             postID,
					"reactions.emoji": bson.M{"$ne": emoji},
				}},
			},
			bson.M{"$push": bson.M{"posts.$.reactions": models.Reaction{
				Emoji: emoji,
				Users: []primitive.ObjectID{userID},
			}}})
		if err != nil {
			return false, err
		}
		if res.MatchedCount > 0 {
			return true, nil
		}

		// Neither update matched: the entry appeared between the two
		// writes, or the post does not exist. Tell them apart and
		// retry the add in the former case.
		n, err := s.c.CountDocuments(ctx,
			bson.M{"org_id": orgID, "team_id": teamID, "posts._id": postID})
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, ErrPostNotFound
		}
	}
}

// DeleteForOrg removes the organization's documents. Used when the
// organization itself is deleted.
func (s *Store) DeleteForOrg(ctx context.Context, orgID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"org_id": orgID})
	return err
}
