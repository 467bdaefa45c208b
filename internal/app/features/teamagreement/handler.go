// internal/app/features/teamagreement/handler.go
package teamagreement

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/agreements"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"github.com/dalemusser/teamhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the per-organization working agreement.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Agreements *agreementstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Agreements: agreementstore.New(db),
	}
}

type agreementRequest struct {
	OrgID                 string               `json:"org_id"`
	Goals                 []string             `json:"goals"`
	MeetingTimes          []models.MeetingSlot `json:"meeting_times"`
	CommunicationChannels []string             `json:"communication_channels"`
	Pulse                 *models.PulseTime    `json:"pulse"`
}

// ServeAgreement returns the organization's working agreement.
func (h *Handler) ServeAgreement(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Agreements.Get(ctx, orgID)
	if errors.Is(err, agreementstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("agreement get: loading agreement", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, a)
}

// HandleCreate writes the agreement for the org named in the body.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}
	var req agreementRequest
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	orgID, err := primitive.ObjectIDFromHex(req.OrgID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}
	h.save(w, r, orgID, req)
}

// HandleUpdate applies a partial update; absent sections keep their
// stored value.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	var req agreementRequest
	if !jsonapi.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Agreements.Get(ctx, orgID)
	if err != nil && !errors.Is(err, agreementstore.ErrNotFound) {
		h.Log.Error("agreement update: loading agreement", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if req.Goals == nil {
		req.Goals = existing.Goals
	}
	if req.MeetingTimes == nil {
		req.MeetingTimes = existing.MeetingTimes
	}
	if req.CommunicationChannels == nil {
		req.CommunicationChannels = existing.CommunicationChannels
	}
	if req.Pulse == nil {
		req.Pulse = existing.Pulse
	}
	h.save(w, r, orgID, req)
}

// HandleDelete removes the agreement.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAuth(w, r); !res.OK {
		return
	}
	orgID, ok := shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Agreements.Delete(ctx, orgID)
	if errors.Is(err, agreementstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("agreement delete: removing agreement", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, orgID primitive.ObjectID, req agreementRequest) {
	for i, g := range req.Goals {
		req.Goals[i] = htmlsanitize.Sanitize(g)
	}
	for i, c := range req.CommunicationChannels {
		req.CommunicationChannels[i] = htmlsanitize.Sanitize(c)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, err := h.Agreements.Upsert(ctx, models.TeamAgreement{
		OrgID:                 orgID,
		Goals:                 req.Goals,
		MeetingTimes:          req.MeetingTimes,
		CommunicationChannels: req.CommunicationChannels,
		Pulse:                 req.Pulse,
	})
	if err != nil {
		h.Log.Error("agreement save: upserting agreement", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, a)
}
