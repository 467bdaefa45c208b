// internal/app/features/accounts/signup.go
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
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

const minPasswordLen = 8

// HandleSignup creates an account and signs the new user in.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Email == "" || !strings.Contains(req.Email, "@") ||
		req.DisplayName == "" || len(req.Password) < minPasswordLen {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("signup: hashing password", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}
	if err != nil {
		h.Log.Error("signup: creating user", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	if err := h.Sessions.SignIn(w, r, auth.SessionUser{
		ID:       user.ID.Hex(),
		Name:     user.DisplayName,
		UserType: user.UserType,
	}); err != nil {
		h.Log.Error("signup: establishing session", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	jsonapi.Write(w, user)
}
