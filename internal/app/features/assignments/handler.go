// internal/app/features/assignments/handler.go
package assignments

import (
	"github.com/dalemusser/teamhub/internal/app/store/assignments"
	"github.com/dalemusser/teamhub/internal/app/store/organizations"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves assignment definitions and each team's working slice
// of them.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Assignments *assignmentstore.Store
	Orgs        *organizationstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Assignments: assignmentstore.New(db),
		Orgs:        organizationstore.New(db),
	}
}
