// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler reports service liveness, including database reachability.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.DB.Client().Ping(ctx, nil); err != nil {
		h.Log.Warn("health check: database unreachable", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}
