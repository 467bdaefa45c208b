// internal/app/features/charters/handler.go
package charters

import (
	"net/http"

	"github.com/dalemusser/teamhub/internal/app/features/shared"
	"github.com/dalemusser/teamhub/internal/app/store/charters"
	"github.com/dalemusser/teamhub/internal/app/system/gates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves team charters.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Charters *charterstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Charters: charterstore.New(db),
	}
}

// teamParams parses the charter-addressing URL parameters and runs the
// membership gate before any lazy creation can happen.
func (h *Handler) teamParams(w http.ResponseWriter, r *http.Request) (orgID primitive.ObjectID, teamID int, ok bool) {
	orgID, ok = shared.ObjectIDParam(w, r, "orgID")
	if !ok {
		return
	}
	teamID, ok = shared.IntParam(w, r, "teamID")
	if !ok {
		return
	}
	if res := gates.RequireTeamMember(w, r, h.DB, orgID, teamID); !res.OK {
		ok = false
		return
	}
	return orgID, teamID, true
}
