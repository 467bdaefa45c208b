// internal/app/features/orgs/join.go
package orgs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleJoin adds the caller to the organization matching the supplied
// access code. Joining twice is a no-op: both roster writes tolerate an
// existing entry.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req struct {
		AccessCode string `json:"access_code"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.AccessCode = strings.TrimSpace(strings.ToLower(req.AccessCode))
	if req.AccessCode == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.GetByAccessCode(ctx, req.AccessCode)
	if errors.Is(err, organizationstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("org join: looking up access code", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	if err := h.Orgs.AddMember(ctx, org.ID, res.UserID); err != nil {
		h.Log.Error("org join: adding member", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if err := h.Users.AddOrgMembership(ctx, res.UserID, org.ID); err != nil {
		h.Log.Error("org join: recording membership on user", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	jsonapi.Write(w, orgView(org, false))
}

// HandleLeave removes the caller from the organization and any team
// they were on. The admin cannot leave their own organization.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
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
		h.Log.Error("org leave: loading organization", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if org.Admin == res.UserID {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	if err := h.Orgs.RemoveMember(ctx, orgID, res.UserID); err != nil {
		h.Log.Error("org leave: removing member", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if err := h.Users.RemoveOrgMembership(ctx, res.UserID, orgID); err != nil {
		h.Log.Error("org leave: clearing membership on user", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	jsonapi.Success(w, nil)
}
