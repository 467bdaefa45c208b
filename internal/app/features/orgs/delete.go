// internal/app/features/orgs/delete.go
package orgs

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/agreements"
	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete tears an organization down: the org document, every
// per-team document keyed to it, and the membership entries on user
// documents. The org document goes first so the operation is not
// repeatable once it succeeds; stragglers in the auxiliary collections
// are harmless and logged.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	if res := gates.RequireOrgAdmin(w, r, h.DB, orgID); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	err := h.Orgs.Delete(ctx, orgID)
	if errors.Is(err, organizationstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("org delete: removing organization", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	cleanup := []struct {
		name string
		fn   func(context.Context, primitive.ObjectID) error
	}{
		{"assignment_sets", h.Assignments.DeleteForOrg},
		{"charters", h.Charters.DeleteForOrg},
		{"boards", h.Boards.DeleteForOrg},
		{"message_logs", h.Messages.DeleteForOrg},
		{"pulse_responses", h.Pulses.DeleteForOrg},
		{"user_profiles", h.Profiles.DeleteForOrg},
	}
	for _, c := range cleanup {
		if err := c.fn(ctx, orgID); err != nil {
			h.Log.Error("org delete: cleaning collection",
				zap.String("collection", c.name),
				zap.String("org_id", orgID.Hex()),
				zap.Error(err))
		}
	}
	if err := h.Agreements.Delete(ctx, orgID); err != nil && !errors.Is(err, agreementstore.ErrNotFound) {
		h.Log.Error("org delete: cleaning team agreement",
			zap.String("org_id", orgID.Hex()),
			zap.Error(err))
	}
	if err := h.Users.RemoveOrgFromAll(ctx, orgID); err != nil {
		h.Log.Error("org delete: stripping memberships",
			zap.String("org_id", orgID.Hex()),
			zap.Error(err))
	}

	jsonapi.Success(w, nil)
}
