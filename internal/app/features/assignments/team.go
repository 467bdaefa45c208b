// internal/app/features/assignments/team.go
package assignments

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeTeamAssignments returns the team's working copy of every
// assignment, creating missing slices on the way. Slice creation picks
// the leader round-robin over the roster, so across a batch of new
// assignments no member leads twice before everyone has led once. The
// membership gate runs first: a non-member can never trigger slice
// creation.
func (h *Handler) ServeTeamAssignments(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	teamID, ok := shared.IntParam(w, r, "teamID")
	if !ok {
		return
	}
	if res := gates.RequireTeamMember(w, r, h.DB, orgID, teamID); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	set, err := h.Assignments.GetOrCreateSet(ctx, orgID)
	if err != nil {
		h.Log.Error("team assignments: loading set", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	var team models.Team
	created := false
	for _, a := range set.Assignments {
		if hasSlice(a, teamID) {
			continue
		}
		if team.TeamID == 0 {
			team, err = h.Orgs.GetTeam(ctx, orgID, teamID)
			if errors.Is(err, organizationstore.ErrTeamNotFound) {
				jsonapi.Error(w, jsonapi.ErrNotFound)
				return
			}
			if err != nil {
				h.Log.Error("team assignments: loading team", zap.Error(err))
				jsonapi.Error(w, jsonapi.ErrInternal)
				return
			}
			if len(team.Members) == 0 {
				jsonapi.Error(w, jsonapi.ErrValidation)
				return
			}
		}
		idx, err := h.Assignments.NextLeaderIndex(ctx, orgID, teamID, len(team.Members))
		if err != nil {
			h.Log.Error("team assignments: picking leader", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
		if _, err := h.Assignments.EnsureTeamSlice(ctx, orgID, a.ID, teamID, team.Members[idx].ID); err != nil {
			h.Log.Error("team assignments: creating slice", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
		created = true
	}

	if created {
		set, err = h.Assignments.GetSet(ctx, orgID)
		if err != nil {
			h.Log.Error("team assignments: reloading set", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
	}

	out := make([]teamView, 0, len(set.Assignments))
	for _, a := range set.Assignments {
		for _, slice := range a.Teams {
			if slice.TeamID != teamID {
				continue
			}
			out = append(out, teamView{
				definitionView: newDefinitionView(a),
				TeamID:         slice.TeamID,
				Leader:         slice.Leader,
				Todos:          sortTodos(slice.Todos),
			})
		}
	}
	jsonapi.Write(w, out)
}

func hasSlice(a models.Assignment, teamID int) bool {
	for _, t := range a.Teams {
		if t.TeamID == teamID {
			return true
		}
	}
	return false
}
