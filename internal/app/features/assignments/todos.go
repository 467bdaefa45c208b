// internal/app/features/assignments/todos.go
package assignments

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/assignments"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleAddTodo appends a task to the team's slice of an assignment.
func (h *Handler) HandleAddTodo(w http.ResponseWriter, r *http.Request) {
	orgID, assignmentID, teamID, ok := h.sliceParams(w, r)
	if !ok {
		return
	}

	var req struct {
		Content  string     `json:"content"`
		Assignee string     `json:"assignee"`
		DueDate  *time.Time `json:"due_date"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Content = strings.TrimSpace(htmlsanitize.Sanitize(req.Content))
	if req.Content == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}
	todo := models.Todo{Content: req.Content, DueDate: req.DueDate}
	if req.Assignee != "" {
		assignee, err := primitive.ObjectIDFromHex(req.Assignee)
		if err != nil {
			jsonapi.Error(w, jsonapi.ErrValidation)
			return
		}
		todo.Assignee = &assignee
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	todo, err := h.Assignments.AddTodo(ctx, orgID, assignmentID, teamID, todo)
	if errors.Is(err, assignmentstore.ErrSliceNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("todo add: saving todo", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, todo)
}

// HandlePatchTodo applies a partial update to one todo. Absent fields
// are untouched; empty-string assignee or due_date clears the value.
func (h *Handler) HandlePatchTodo(w http.ResponseWriter, r *http.Request) {
	orgID, assignmentID, teamID, ok := h.sliceParams(w, r)
	if !ok {
		return
	}

	var req struct {
		TodoID    string  `json:"todo_id"`
		Content   *string `json:"content"`
		Assignee  *string `json:"assignee"`
		DueDate   *string `json:"due_date"`
		Completed *bool   `json:"completed"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	todoID, err := primitive.ObjectIDFromHex(req.TodoID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	patch := assignmentstore.TodoPatch{Completed: req.Completed}
	if req.Content != nil {
		content := strings.TrimSpace(htmlsanitize.Sanitize(*req.Content))
		if content == "" {
			jsonapi.Error(w, jsonapi.ErrValidation)
			return
		}
		patch.Content = &content
	}
	if req.Assignee != nil {
		if *req.Assignee == "" {
			patch.ClearAssignee = true
		} else {
			assignee, err := primitive.ObjectIDFromHex(*req.Assignee)
			if err != nil {
				jsonapi.Error(w, jsonapi.ErrValidation)
				return
			}
			patch.Assignee = &assignee
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			patch.ClearDueDate = true
		} else {
			due, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				jsonapi.Error(w, jsonapi.ErrValidation)
				return
			}
			patch.DueDate = &due
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = h.Assignments.PatchTodo(ctx, orgID, assignmentID, teamID, todoID, patch)
	if errors.Is(err, assignmentstore.ErrNotFound) || errors.Is(err, assignmentstore.ErrTodoNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("todo patch: saving todo", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

// HandleDeleteTodo removes one todo from the team's slice.
func (h *Handler) HandleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	orgID, assignmentID, teamID, ok := h.sliceParams(w, r)
	if !ok {
		return
	}

	var req struct {
		TodoID string `json:"todo_id"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	todoID, err := primitive.ObjectIDFromHex(req.TodoID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Assignments.DeleteTodo(ctx, orgID, assignmentID, teamID, todoID)
	if errors.Is(err, assignmentstore.ErrTodoNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("todo delete: removing todo", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

// sliceParams parses the slice-addressing URL parameters and runs the
// team membership gate.
func (h *Handler) sliceParams(w http.ResponseWriter, r *http.Request) (orgID, assignmentID primitive.ObjectID, teamID int, ok bool) {
	orgID, ok = shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	assignmentID, ok = shared.ObjectIDParam(w, r, "assignmentID")
	if !ok {
		return
	}
	teamID, ok = shared.IntParam(w, r, "teamID")
	if !ok {
		return
	}
	if res := gates.RequireTeamMember(w, r, h.DB, orgID, teamID); !res.OK {
		ok = false
		return
	}
	return orgID, assignmentID, teamID, true
}
