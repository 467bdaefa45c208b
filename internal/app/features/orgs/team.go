// internal/app/features/orgs/team.go
package orgs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/policy/teampolicy"
	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeTeam returns one team with its roster resolved to current
// display data.
func (h *Handler) ServeTeam(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	team, err := h.Orgs.GetTeam(ctx, orgID, teamID)
	if errors.Is(err, organizationstore.ErrTeamNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("team get: loading team", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	members, err := teampolicy.Members(ctx, h.DB, orgID, teamID)
	if err != nil {
		h.Log.Error("team get: resolving roster", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	jsonapi.Write(w, map[string]any{
		"team_id": team.TeamID,
		"name":    team.Name,
		"members": members,
	})
}

// HandleAddTeamMember places an organization member on a team, admin
// only. A user belongs to at most one team per organization, so the
// move drops them from their previous team first.
func (h *Handler) HandleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	teamID, ok := shared.IntParam(w, r, "teamID")
	if !ok {
		return
	}
	if res := gates.RequireOrgAdmin(w, r, h.DB, orgID); !res.OK {
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

	org, err := h.Orgs.GetByID(ctx, orgID)
	if err != nil {
		h.Log.Error("team member add: loading org", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	isMember := false
	for _, m := range org.Members {
		if m == userID {
			isMember = true
			break
		}
	}
	if !isMember {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	for _, team := range org.Teams {
		if team.TeamID == teamID {
			continue
		}
		for _, m := range team.Members {
			if m.ID == userID {
				if err := h.Orgs.RemoveTeamMember(ctx, orgID, team.TeamID, userID); err != nil {
					h.Log.Error("team member add: leaving previous team", zap.Error(err))
					jsonapi.Error(w, jsonapi.ErrInternal)
					return
				}
			}
		}
	}

	err = h.Orgs.AddTeamMember(ctx, orgID, teamID, userID)
	if errors.Is(err, organizationstore.ErrTeamNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil && !errors.Is(err, organizationstore.ErrAlreadyTeamMember) {
		h.Log.Error("team member add: joining team", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if err := h.Users.SetTeam(ctx, userID, orgID, teamID); err != nil {
		h.Log.Error("team member add: recording team on user", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	jsonapi.Success(w, nil)
}

// HandleRemoveTeamMember takes a user off a team, admin only. The user
// stays in the organization.
func (h *Handler) HandleRemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	teamID, ok := shared.IntParam(w, r, "teamID")
	if !ok {
		return
	}
	if res := gates.RequireOrgAdmin(w, r, h.DB, orgID); !res.OK {
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

	err = h.Orgs.RemoveTeamMember(ctx, orgID, teamID, userID)
	if errors.Is(err, organizationstore.ErrTeamNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("team member remove: leaving team", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if err := h.Users.SetTeam(ctx, userID, orgID, 0); err != nil {
		h.Log.Error("team member remove: clearing team on user", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	jsonapi.Success(w, nil)
}

// HandleRenameTeam changes a team's display name. Only the embedded
// team entry changes; nothing else references the name.
func (h *Handler) HandleRenameTeam(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		Name string `json:"name"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Orgs.RenameTeam(ctx, orgID, teamID, req.Name)
	if errors.Is(err, organizationstore.ErrTeamNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("team rename: saving name", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}
