// internal/app/features/orgs/teamsrandom.go
package orgs

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleRandomTeams shuffles the member roster into teams of the
// requested size and replaces the organization's team layout. Any
// existing teams are discarded; team ids restart at 1. The remainder
// lands on the last team, which may run short.
func (h *Handler) HandleRandomTeams(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	res := gates.RequireOrgAdmin(w, r, h.DB, orgID)
	if !res.OK {
		return
	}

	var req struct {
		TeamSize int `json:"team_size"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	if req.TeamSize < 1 {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, orgID)
	if errors.Is(err, organizationstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("random teams: loading organization", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if len(org.Members) == 0 {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	shuffled := make([]primitive.ObjectID, len(org.Members))
	copy(shuffled, org.Members)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var teams []models.Team
	for start := 0; start < len(shuffled); start += req.TeamSize {
		end := start + req.TeamSize
		if end > len(shuffled) {
			end = len(shuffled)
		}
		id := len(teams) + 1
		refs := make([]models.TeamMemberRef, 0, end-start)
		for _, uid := range shuffled[start:end] {
			refs = append(refs, models.TeamMemberRef{ID: uid})
		}
		teams = append(teams, models.Team{
			TeamID:  id,
			Name:    fmt.Sprintf("Team %d", id),
			Members: refs,
		})
	}

	if err := h.Orgs.SetTeams(ctx, orgID, teams); err != nil {
		h.Log.Error("random teams: saving layout", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	for _, team := range teams {
		ids := make([]primitive.ObjectID, 0, len(team.Members))
		for _, ref := range team.Members {
			ids = append(ids, ref.ID)
		}
		if err := h.Users.SetTeamForUsers(ctx, ids, orgID, team.TeamID); err != nil {
			h.Log.Error("random teams: recording team on users",
				zap.Int("team_id", team.TeamID),
				zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
	}

	jsonapi.Write(w, teams)
}
