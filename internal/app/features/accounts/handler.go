// internal/app/features/accounts/handler.go
package accounts

import (
	"github.com/dalemusser/teamhub/internal/app/store/users"
	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the signup/signin/signout flow.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Sessions *auth.SessionManager
	Users    *userstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger, sm *auth.SessionManager) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Sessions: sm,
		Users:    userstore.New(db),
	}
}
