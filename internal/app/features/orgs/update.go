// internal/app/features/orgs/update.go
package orgs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"github.com/dalemusser/teamhub/internal/app/system/accesscode"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleUpdate edits the organization's name and description.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	if res := gates.RequireOrgAdmin(w, r, h.DB, orgID); !res.OK {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = htmlsanitize.Sanitize(req.Description)
	if req.Name == "" && req.Description == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Orgs.Update(ctx, orgID, req.Name, req.Description)
	if errors.Is(err, organizationstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("org update: saving organization", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

// HandleRefreshCode replaces the organization's join code, invalidating
// the old one.
func (h *Handler) HandleRefreshCode(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	if res := gates.RequireOrgAdmin(w, r, h.DB, orgID); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	for attempt := 0; ; attempt++ {
		code, err := accesscode.New()
		if err != nil {
			h.Log.Error("org code: generating access code", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
		err = h.Orgs.SetAccessCode(ctx, orgID, code)
		if errors.Is(err, organizationstore.ErrDuplicateCode) && attempt < codeAttempts {
			continue
		}
		if errors.Is(err, organizationstore.ErrNotFound) {
			jsonapi.Error(w, jsonapi.ErrNotFound)
			return
		}
		if err != nil {
			h.Log.Error("org code: saving access code", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
		jsonapi.Success(w, map[string]any{"access_code": code})
		return
	}
}
