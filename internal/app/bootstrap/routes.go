// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/dalemusser/teamhub/internal/app/features/accounts"
	assignmentsfeature "github.com/dalemusser/teamhub/internal/app/features/assignments"
	boardfeature "github.com/dalemusser/teamhub/internal/app/features/board"
	chartersfeature "github.com/dalemusser/teamhub/internal/app/features/charters"
	healthfeature "github.com/dalemusser/teamhub/internal/app/features/health"
	msgfeature "github.com/dalemusser/teamhub/internal/app/features/msg"
	orgsfeature "github.com/dalemusser/teamhub/internal/app/features/orgs"
	pulsefeature "github.com/dalemusser/teamhub/internal/app/features/pulse"
	teamagreementfeature "github.com/dalemusser/teamhub/internal/app/features/teamagreement"
	userprofilefeature "github.com/dalemusser/teamhub/internal/app/features/userprofile"
	usersfeature "github.com/dalemusser/teamhub/internal/app/features/users"
	"github.com/dalemusser/teamhub/internal/app/system/auth"
	"github.com/dalemusser/teamhub/internal/app/system/requestid"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// TeamHub applies session and request-id middleware, then mounts the JSON
// API feature routers under /api: accounts, users, organizations,
// assignments, charters, message logs, boards, team agreements, pulse
// surveys, and user profiles.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.TeamHubMongoDatabase

	r := chi.NewRouter()

	// Tag every request with an id for log correlation.
	r.Use(requestid.Middleware)

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	api := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(db, logger)
	api.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication and account management
	accountsHandler := accountsfeature.NewHandler(db, logger, sessionMgr)
	api.Mount("/accounts", accountsfeature.Routes(accountsHandler))

	usersHandler := usersfeature.NewHandler(db, logger, sessionMgr)
	api.Mount("/users", usersfeature.Routes(usersHandler))

	// Organization and team management
	orgsHandler := orgsfeature.NewHandler(db, logger)
	api.Mount("/org", orgsfeature.Routes(orgsHandler))

	// Team workspace features
	assignmentsHandler := assignmentsfeature.NewHandler(db, logger)
	api.Mount("/assignments", assignmentsfeature.Routes(assignmentsHandler))

	chartersHandler := chartersfeature.NewHandler(db, logger)
	api.Mount("/charters", chartersfeature.Routes(chartersHandler))

	msgHandler := msgfeature.NewHandler(db, logger)
	api.Mount("/msg", msgfeature.Routes(msgHandler))

	boardHandler := boardfeature.NewHandler(db, logger)
	api.Mount("/board", boardfeature.Routes(boardHandler))

	teamAgreementHandler := teamagreementfeature.NewHandler(db, logger)
	api.Mount("/teamagreement", teamagreementfeature.Routes(teamAgreementHandler))

	pulseHandler := pulsefeature.NewHandler(db, logger)
	api.Mount("/pulse", pulsefeature.Routes(pulseHandler))

	userProfileHandler := userprofilefeature.NewHandler(db, logger)
	api.Mount("/userprofile", userprofilefeature.Routes(userProfileHandler))

	r.Mount("/api", api)

	return r, nil
}
