// internal/app/features/assignments/list.go
package assignments

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/assignments"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeList returns every assignment definition in the organization,
// without the per-team slices.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	set, err := h.Assignments.GetSet(ctx, orgID)
	if errors.Is(err, assignmentstore.ErrNotFound) {
		jsonapi.Write(w, []definitionView{})
		return
	}
	if err != nil {
		h.Log.Error("assignment list: loading set", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	out := make([]definitionView, 0, len(set.Assignments))
	for _, a := range set.Assignments {
		out = append(out, newDefinitionView(a))
	}
	jsonapi.Write(w, out)
}

// ServeOne returns a single assignment definition.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	assignmentID, ok := shared.ObjectIDParam(w, r, "assignmentID")
	if !ok {
		return
	}
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	set, err := h.Assignments.GetSet(ctx, orgID)
	if errors.Is(err, assignmentstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("assignment get: loading set", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	for _, a := range set.Assignments {
		if a.ID == assignmentID {
			jsonapi.Write(w, newDefinitionView(a))
			return
		}
	}
	jsonapi.Error(w, jsonapi.ErrNotFound)
}
