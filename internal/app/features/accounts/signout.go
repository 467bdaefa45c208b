// internal/app/features/accounts/signout.go
package accounts

import (
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"go.uber.org/zap"
)

// HandleSignout clears the caller's session.
func (h *Handler) HandleSignout(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Error("signout: clearing session", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}
