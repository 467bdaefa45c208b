// internal/app/features/users/delete.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete soft-deletes the caller's account and ends the session.
// The document stays behind as a tombstone so historical messages,
// posts, and rosters still resolve the id.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Users.SoftDelete(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("users: deleting account", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Warn("users: clearing session after delete", zap.Error(err))
	}
	jsonapi.Success(w, nil)
}
