// internal/app/store/assignments/assignmentstore.go
package assignmentstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store manages the one assignment_sets document each organization
// owns: the admin-authored assignment definitions plus every team's
// working slice of them.
type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound           = errors.New("assignment set not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSliceNotFound      = errors.New("team has no slice of this assignment")
	ErrTodoNotFound       = errors.New("todo not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignment_sets")}
}

// GetOrCreateSet returns the organization's assignment set, creating an
// empty one on first access. The unique org_id index makes concurrent
// first accesses converge on a single document.
func (s *Store) GetOrCreateSet(ctx context.Context, orgID primitive.ObjectID) (models.AssignmentSet, error) {
	var set models.AssignmentSet
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"org_id": orgID},
		bson.M{"$setOnInsert": bson.M{
			"org_id":      orgID,
			"assignments": []models.Assignment{},
		}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&set)
	if err != nil {
		return models.AssignmentSet{}, err
	}
	return set, nil
}

func (s *Store) GetSet(ctx context.Context, orgID primitive.ObjectID) (models.AssignmentSet, error) {
	var set models.AssignmentSet
	err := s.c.FindOne(ctx, bson.M{"org_id": orgID}).Decode(&set)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AssignmentSet{}, ErrNotFound
	}
	if err != nil {
		return models.AssignmentSet{}, err
	}
	return set, nil
}

// AddAssignment appends a new definition. The upsert creates the set on
// the fly so admins can define assignments before any team has looked.
func (s *Store) AddAssignment(ctx context.Context, orgID primitive.ObjectID, a models.Assignment) (models.Assignment, error) {
	a.ID = primitive.NewObjectID()
	if a.Teams == nil {
		a.Teams = []models.AssignmentTeam{}
	}
	_, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID},
		bson.M{"$push": bson.M{"assignments": a}},
		options.Update().SetUpsert(true))
	if err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// UpdateAssignment edits a definition's descriptive fields. Team slices
// are untouched.
func (s *Store) UpdateAssignment(ctx context.Context, orgID, assignmentID primitive.ObjectID, name, description string, dueDate *time.Time) error {
	set := bson.M{}
	if name != "" {
		set["assignments.$.name"] = name
	}
	if description != "" {
		set["assignments.$.description"] = description
	}
	update := bson.M{}
	if dueDate != nil {
		set["assignments.$.due_date"] = *dueDate
	}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(update) == 0 {
		return nil
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID, "assignments._id": assignmentID},
		update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// DeleteAssignment removes a definition along with every team's slice
// of it.
func (s *Store) DeleteAssignment(ctx context.Context, orgID, assignmentID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID},
		bson.M{"$pull": bson.M{"assignments": bson.M{"_id": assignmentID}}})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// NextLeaderIndex consumes one round-robin tick for the team and maps
// it onto the member list. Ticks start at zero, which is congruent to
// seeding at the team size.
func (s *Store) NextLeaderIndex(ctx context.Context, orgID primitive.ObjectID, teamID, teamSize int) (int, error) {
	if teamSize <= 0 {
		return 0, errors.New("leader index: empty team")
	}
	key := "leader_counters." + strconv.Itoa(teamID)
	var before struct {
		LeaderCounters map[string]int `bson:"leader_counters"`
	}
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"org_id": orgID},
		bson.M{"$inc": bson.M{key: 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.Before).
			SetProjection(bson.M{"leader_counters": 1}),
	).Decode(&before)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Upsert created the document; this was the first tick.
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return before.LeaderCounters[strconv.Itoa(teamID)] % teamSize, nil
}

// EnsureTeamSlice creates the team's working copy of an assignment if
// it does not exist yet. The filter excludes assignments that already
// carry a slice for the team, so concurrent creates produce exactly
// one. Returns true when this call created the slice.
func (s *Store) EnsureTeamSlice(ctx context.Context, orgID, assignmentID primitive.ObjectID, teamID int, leader primitive.ObjectID) (bool, error) {
	slice := models.AssignmentTeam{
		TeamID: teamID,
		Leader: leader,
		Todos:  []models.Todo{},
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"org_id": orgID,
			"assignments": bson.M{"$elemMatch": bson.M{
				"_id":           assignmentID,
				"teams.team_id": bson.M{"$ne": teamID},
			}},
		},
		bson.M{"$push": bson.M{"assignments.$.teams": slice}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// AddTodo appends a task to the team's slice of an assignment.
func (s *Store) AddTodo(ctx context.Context, orgID, assignmentID primitive.ObjectID, teamID int, todo models.Todo) (models.Todo, error) {
	todo.ID = primitive.NewObjectID()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID},
		bson.M{"$push": bson.M{"assignments.$[a].teams.$[t].todos": todo}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"a._id": assignmentID},
				bson.M{"t.team_id": teamID},
			},
		}))
	if err != nil {
		return models.Todo{}, err
	}
	if res.ModifiedCount == 0 {
		return models.Todo{}, ErrSliceNotFound
	}
	return todo, nil
}

// TodoPatch describes a partial todo update. Nil pointers leave fields
// alone; the Clear flags unset the optional ones.
type TodoPatch struct {
	Content       *string
	Assignee      *primitive.ObjectID
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
	Completed     *bool
}

// PatchTodo applies a partial update to one todo in place.
func (s *Store) PatchTodo(ctx context.Context, orgID, assignmentID primitive.ObjectID, teamID int, todoID primitive.ObjectID, patch TodoPatch) error {
	const base = "assignments.$[a].teams.$[t].todos.$[d]."
	set := bson.M{}
	unset := bson.M{}
	if patch.Content != nil {
		set[base+"content"] = *patch.Content
	}
	if patch.ClearAssignee {
		unset[base+"assignee"] = ""
	} else if patch.Assignee != nil {
		set[base+"assignee"] = *patch.Assignee
	}
	if patch.ClearDueDate {
		unset[base+"due_date"] = ""
	} else if patch.DueDate != nil {
		set[base+"due_date"] = *patch.DueDate
	}
	if patch.Completed != nil {
		set[base+"completed"] = *patch.Completed
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(update) == 0 {
		return nil
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID},
		update,
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"a._id": assignmentID},
				bson.M{"t.team_id": teamID},
				bson.M{"d._id": todoID},
			},
		}))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if res.ModifiedCount == 0 {
		// Matched the set but no todo changed: either the todo is gone
		// or the patch was a no-op. Treat an absent todo as the error.
		exists, err := s.todoExists(ctx, orgID, assignmentID, teamID, todoID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrTodoNotFound
		}
	}
	return nil
}

// DeleteTodo removes one task from the team's slice.
func (s *Store) DeleteTodo(ctx context.Context, orgID, assignmentID primitive.ObjectID, teamID int, todoID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"org_id": orgID},
		bson.M{"$pull": bson.M{"assignments.$[a].teams.$[t].todos": bson.M{"_id": todoID}}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"a._id": assignmentID},
				bson.M{"t.team_id": teamID},
			},
		}))
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (s *Store) todoExists(ctx context.Context, orgID, assignmentID primitive.ObjectID, teamID int, todoID primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"org_id": orgID,
		"assignments": bson.M{"$elemMatch": bson.M{
			"_id": assignmentID,
			"teams": bson.M{"$elemMatch": bson.M{
				"team_id":   teamID,
				"todos._id": todoID,
			}},
		}},
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
