// internal/app/features/orgs/handler.go
package orgs

import (
	"github.com/dalemusser/teamhub/internal/app/store/agreements"
	"github.com/dalemusser/teamhub/internal/app/store/assignments"
	"github.com/dalemusser/teamhub/internal/app/store/boards"
	"github.com/dalemusser/teamhub/internal/app/store/charters"
	"github.com/dalemusser/teamhub/internal/app/store/messages"
	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"github.com/dalemusser/teamhub/internal/app/store/profiles"
	"github.com/dalemusser/teamhub/internal/app/store/pulses"
	"github.com/dalemusser/teamhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns organization and team management. It reaches into the
// per-team document stores only when an organization is torn down.
type Handler struct {
	DB    *mongo.Database
	Log   *zap.Logger
	Orgs  *organizationstore.Store
	Users *userstore.Store

	Assignments *assignmentstore.Store
	Charters    *charterstore.Store
	Boards      *boardstore.Store
	Messages    *messagestore.Store
	Agreements  *agreementstore.Store
	Pulses      *pulsestore.Store
	Profiles    *profilestore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Orgs:        organizationstore.New(db),
		Users:       userstore.New(db),
		Assignments: assignmentstore.New(db),
		Charters:    charterstore.New(db),
		Boards:      boardstore.New(db),
		Messages:    messagestore.New(db),
		Agreements:  agreementstore.New(db),
		Pulses:      pulsestore.New(db),
		Profiles:    profilestore.New(db),
	}
}
