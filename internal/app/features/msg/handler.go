// internal/app/features/msg/handler.go
package msg

import (
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/messages"
	"github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves team message logs.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Messages *messagestore.Store
	Users    *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Messages: messagestore.New(db),
		Users:    userstore.New(db),
	}
}

func (h *Handler) teamParams(w http.ResponseWriter, r *http.Request) (orgID primitive.ObjectID, teamID int, res gates.Result, ok bool) {
	orgID, ok = shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	teamID, ok = shared.IntParam(w, r, "teamID")
	if !ok {
		return
	}
	res = gates.RequireTeamMember(w, r, h.DB, orgID, teamID)
	ok = res.OK
	return
}
