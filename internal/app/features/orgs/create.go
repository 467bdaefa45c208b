// internal/app/features/orgs/create.go
package orgs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"github.com/dalemusser/teamhub/internal/app/system/accesscode"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.uber.org/zap"
)

// codeAttempts bounds retries when a generated access code collides
// with an existing organization's.
const codeAttempts = 5

// HandleCreate creates an organization with the caller as admin and a
// freshly generated join code. The admin-list entry on the user
// document is written second; if that write fails the org still exists
// and the admin field remains authoritative.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
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
	if req.Name == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var org models.Organization
	for attempt := 0; ; attempt++ {
		code, err := accesscode.New()
		if err != nil {
			h.Log.Error("org create: generating access code", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
		org, err = h.Orgs.Create(ctx, models.Organization{
			Name:        req.Name,
			Description: htmlsanitize.Sanitize(req.Description),
			AccessCode:  code,
			Admin:       res.UserID,
		})
		if errors.Is(err, organizationstore.ErrDuplicateCode) && attempt < codeAttempts {
			continue
		}
		if err != nil {
			h.Log.Error("org create: inserting organization", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
		break
	}

	if err := h.Users.AddAdminOf(ctx, res.UserID, org.ID); err != nil {
		h.Log.Error("org create: recording admin on user",
			zap.String("org_id", org.ID.Hex()),
			zap.Error(err))
	}

	jsonapi.Write(w, orgView(org, true))
}

// orgView renders an organization, including the access code only for
// the admin.
func orgView(org models.Organization, admin bool) map[string]any {
	v := map[string]any{
		"id":          org.ID,
		"name":        org.Name,
		"description": org.Description,
		"admin":       org.Admin,
		"members":     org.Members,
		"teams":       org.Teams,
		"created_at":  org.CreatedAt,
		"updated_at":  org.UpdatedAt,
	}
	if admin {
		v["access_code"] = org.AccessCode
	}
	return v
}
