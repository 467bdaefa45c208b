// internal/app/features/orgs/members.go
package orgs

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memberView struct {
	ID          primitive.ObjectID `json:"id"`
	DisplayName string             `json:"display_name"`
	Email       string             `json:"email"`
	TeamID      int                `json:"team_id,omitempty"`
}

// ServeMembers lists the organization's members with display data
// resolved at read time and each member's team, derived from the
// embedded team rosters.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, orgID)
	if errors.Is(err, organizationstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("org members: loading organization", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	teamOf := make(map[primitive.ObjectID]int)
	for _, team := range org.Teams {
		for _, ref := range team.Members {
			teamOf[ref.ID] = team.TeamID
		}
	}

	users, err := h.Users.GetByIDs(ctx, org.Members)
	if err != nil {
		h.Log.Error("org members: resolving users", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	out := make([]memberView, 0, len(users))
	for _, u := range users {
		out = append(out, memberView{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			TeamID:      teamOf[u.ID],
		})
	}
	jsonapi.Write(w, out)
}

// HandleKick removes a member from the organization, admin only.
func (h *Handler) HandleKick(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	res := gates.RequireOrgAdmin(w, r, h.DB, orgID)
	if !res.OK {
		return
	}

	var req struct {
		UserID string `json:"user_id"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Orgs.RemoveMember(ctx, orgID, userID); err != nil {
		if errors.Is(err, organizationstore.ErrNotFound) {
			jsonapi.Error(w, jsonapi.ErrNotFound)
			return
		}
		h.Log.Error("org kick: removing member", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if err := h.Users.RemoveOrgMembership(ctx, userID, orgID); err != nil {
		h.Log.Error("org kick: clearing membership on user", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	jsonapi.Success(w, nil)
}
