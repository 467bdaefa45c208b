// internal/app/features/users/update.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleUpdate changes the account's display name. Self only.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := shared.ObjectIDParam(w, r, "userID")
	if !ok {
		return
	}
	if id != res.UserID {
		jsonapi.Error(w, jsonapi.ErrNotAuthorized)
		return
	}

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Users.UpdateProfile(ctx, id, userstore.ProfileUpdate{DisplayName: &req.DisplayName})
	if errors.Is(err, userstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("users: updating account", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

// HandleUpdateInformation applies a partial patch to the free-form
// profile fields. Absent fields are untouched; present-but-empty
// strings clear the stored value. Self only.
func (h *Handler) HandleUpdateInformation(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	id, ok := shared.ObjectIDParam(w, r, "userID")
	if !ok {
		return
	}
	if id != res.UserID {
		jsonapi.Error(w, jsonapi.ErrNotAuthorized)
		return
	}

	var req struct {
		Standing  *string `json:"standing"`
		Major     *string `json:"major"`
		MBTI      *string `json:"mbti"`
		Phone     *string `json:"phone"`
		Workstyle *string `json:"workstyle"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Users.UpdateProfile(ctx, id, userstore.ProfileUpdate{
		Standing:  req.Standing,
		Major:     req.Major,
		MBTI:      req.MBTI,
		Phone:     req.Phone,
		Workstyle: req.Workstyle,
	})
	if errors.Is(err, userstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("users: patching profile", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}
