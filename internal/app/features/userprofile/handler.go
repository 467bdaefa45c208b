// internal/app/features/userprofile/handler.go
package userprofile

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/profiles"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves per-organization intake profiles.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Profiles *profilestore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Profiles: profilestore.New(db),
	}
}

// ServeProfile returns one member's intake answers for an org.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	userID, ok := shared.ObjectIDParam(w, r, "userID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Profiles.Get(ctx, orgID, userID)
	if errors.Is(err, profilestore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("profile get: loading profile", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, p)
}

// ServeAll lists every profile in the org. Admin only.
func (h *Handler) ServeAll(w http.ResponseWriter, r *http.Request) {
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	if res := gates.RequireOrgAdmin(w, r, h.DB, orgID); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out, err := h.Profiles.ListForOrg(ctx, orgID)
	if err != nil {
		h.Log.Error("profile list: loading profiles", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, out)
}

// HandleCreate saves the caller's own intake answers for the org named
// in the body.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	var req struct {
		OrgID     string   `json:"org_id"`
		Questions []string `json:"questions"`
		Answers   []string `json:"answers"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrgID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}
	h.save(w, r, orgID, res.UserID, req.Questions, req.Answers)
}

// HandleUpdate overwrites the profile. Self only.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	userID, ok := shared.ObjectIDParam(w, r, "userID")
	if !ok {
		return
	}
	if userID != res.UserID {
		jsonapi.Error(w, jsonapi.ErrNotAuthorized)
		return
	}
	var req struct {
		Questions []string `json:"questions"`
		Answers   []string `json:"answers"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	h.save(w, r, orgID, userID, req.Questions, req.Answers)
}

// HandleDelete removes the profile. Self only.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	userID, ok := shared.ObjectIDParam(w, r, "userID")
	if !ok {
		return
	}
	if userID != res.UserID {
		jsonapi.Error(w, jsonapi.ErrNotAuthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Profiles.Delete(ctx, orgID, userID)
	if errors.Is(err, profilestore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("profile delete: removing profile", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, orgID, userID primitive.ObjectID, questions, answers []string) {
	if len(questions) != len(answers) {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}
	for i := range answers {
		answers[i] = htmlsanitize.Sanitize(answers[i])
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.Profiles.Upsert(ctx, models.UserProfile{
		OrgID:     orgID,
		UserID:    userID,
		Questions: questions,
		Answers:   answers,
	})
	if err != nil {
		h.Log.Error("profile save: upserting profile", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, p)
}
