// internal/app/features/pulse/handler.go
package pulse

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/policy/teampolicy"
	"github.com/dalemusser/teamhub/internal/app/store/pulses"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves weekly pulse survey responses.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Pulses *pulsestore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Pulses: pulsestore.New(db),
	}
}

// ServeWeek returns pulse responses for a week: the caller's own, or
// every member's when the caller administers the organization.
func (h *Handler) ServeWeek(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	week, ok := shared.IntParam(w, r, "week")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admin, err := teampolicy.IsOrgAdmin(ctx, h.DB, res.UserID, orgID)
	if err != nil {
		h.Log.Error("pulse week: checking admin", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if admin {
		out, err := h.Pulses.ListForWeek(ctx, orgID, week)
		if err != nil {
			h.Log.Error("pulse week: listing responses", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
		jsonapi.Write(w, out)
		return
	}

	resp, err := h.Pulses.GetForUserWeek(ctx, orgID, res.UserID, week)
	if errors.Is(err, pulsestore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("pulse week: loading response", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, resp)
}

// ServeHistory returns all of the caller's submissions in the org.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
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

	out, err := h.Pulses.ListForUser(ctx, orgID, res.UserID)
	if err != nil {
		h.Log.Error("pulse history: listing responses", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, out)
}

// HandleSubmit records the caller's answers for a week. A second
// submission for the same week is rejected.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}

	var req struct {
		Week      int      `json:"week"`
		Questions []string `json:"questions"`
		Answers   []string `json:"answers"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	if req.Week < 0 || len(req.Questions) != len(req.Answers) || len(req.Questions) == 0 {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	resp, err := h.Pulses.Submit(ctx, models.PulseResponse{
		OrgID:     orgID,
		UserID:    res.UserID,
		Week:      req.Week,
		Questions: req.Questions,
		Answers:   req.Answers,
	})
	if errors.Is(err, pulsestore.ErrAlreadySubmitted) {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}
	if err != nil {
		h.Log.Error("pulse submit: saving response", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, resp)
}
