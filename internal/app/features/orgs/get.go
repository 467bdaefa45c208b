// internal/app/features/orgs/get.go
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
	"go.uber.org/zap"
)

// ServeOrg returns one organization. The access code appears only for
// the admin.
func (h *Handler) ServeOrg(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, orgID)
	if errors.Is(err, organizationstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("org get: loading organization", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	jsonapi.Write(w, orgView(org, org.Admin == res.UserID))
}
