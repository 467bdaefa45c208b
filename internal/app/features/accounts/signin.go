// internal/app/features/accounts/signin.go
package accounts

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignin verifies credentials and establishes a session. Bad
// email and bad password are indistinguishable to the caller.
func (h *Handler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, userstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotAuthenticated)
		return
	}
	if err != nil {
		h.Log.Error("signin: loading user", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	// Soft-deleted accounts have an empty hash and can never sign in.
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		jsonapi.Error(w, jsonapi.ErrNotAuthenticated)
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:       user.ID.Hex(),
		Name:     user.DisplayName,
		UserType: user.UserType,
	}); err != nil {
		h.Log.Error("signin: establishing session", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	jsonapi.Write(w, user)
}
