// internal/app/features/assignments/admin.go
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
	"go.uber.org/zap"
)

type assignmentRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// HandleCreate defines a new assignment. Team slices are not created
// here; each team gets its copy lazily on first view.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	if res := gates.RequireOrgAdmin(w, r, h.DB, orgID); !res.OK {
		return
	}

	var req assignmentRequest
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Assignments.AddAssignment(ctx, orgID, models.Assignment{
		Name:        req.Name,
		Description: htmlsanitize.Sanitize(req.Description),
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.Log.Error("assignment create: saving definition", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, a)
}

// HandleUpdate edits a definition's name, description, or due date.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	assignmentID, ok := shared.ObjectIDParam(w, r, "assignmentID")
	if !ok {
		return
	}
	if res := gates.RequireOrgAdmin(w, r, h.DB, orgID); !res.OK {
		return
	}

	var req assignmentRequest
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = htmlsanitize.Sanitize(req.Description)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Assignments.UpdateAssignment(ctx, orgID, assignmentID, req.Name, req.Description, req.DueDate)
	if errors.Is(err, assignmentstore.ErrAssignmentNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("assignment update: saving definition", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

// HandleDelete removes a definition and every team's slice of it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	assignmentID, ok := shared.ObjectIDParam(w, r, "assignmentID")
	if !ok {
		return
	}
	if res := gates.RequireOrgAdmin(w, r, h.DB, orgID); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Assignments.DeleteAssignment(ctx, orgID, assignmentID)
	if errors.Is(err, assignmentstore.ErrAssignmentNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("assignment delete: removing definition", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}
