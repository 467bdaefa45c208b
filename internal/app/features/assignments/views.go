// internal/app/features/assignments/views.go
package assignments

import (
	"sort"
	"time"

	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// definitionView is an assignment without its per-team slices.
type definitionView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	DueDate     *time.Time         `json:"due_date,omitempty"`
}

func newDefinitionView(a models.Assignment) definitionView {
	return definitionView{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		DueDate:     a.DueDate,
	}
}

// teamView is one team's working copy of an assignment.
type teamView struct {
	definitionView
	TeamID int                `json:"team_id"`
	Leader primitive.ObjectID `json:"leader"`
	Todos  []models.Todo      `json:"todos"`
}

// sortTodos orders todos by due date ascending, undated last, keeping
// insertion order among ties.
func sortTodos(todos []models.Todo) []models.Todo {
	out := make([]models.Todo, len(todos))
	copy(out, todos)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out
}
