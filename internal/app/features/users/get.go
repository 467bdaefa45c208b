// internal/app/features/users/get.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/authz"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeSelf returns the signed-in user's full account document.
func (h *Handler) ServeSelf(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, res.UserID)
	if errors.Is(err, userstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("users: loading self", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, user)
}

// ServeUser returns another user's account. Unauthenticated callers see
// only the public identity fields; signed-in callers see the full
// document.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.ObjectIDParam(w, r, "userID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("users: loading user", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	if !authz.IsAuthenticated(r) {
		jsonapi.Write(w, map[string]any{
			"id":           user.ID,
			"email":        user.Email,
			"display_name": user.DisplayName,
		})
		return
	}
	jsonapi.Write(w, user)
}
