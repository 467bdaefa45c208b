// internal/app/features/orgs/routes.go
package orgs

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/create", h.HandleCreate)
	r.Post("/join", h.HandleJoin)

	r.Get("/{orgID}", h.ServeOrg)
	r.Put("/{orgID}", h.HandleUpdate)
	r.Delete("/{orgID}", h.HandleDelete)
	r.Post("/{orgID}/code", h.HandleRefreshCode)
	r.Post("/{orgID}/leave", h.HandleLeave)
	r.Get("/{orgID}/members", h.ServeMembers)
	r.Post("/{orgID}/kick", h.HandleKick)
	r.Post("/{orgID}/teams/random", h.HandleRandomTeams)
	r.Get("/{orgID}/team/{teamID}", h.ServeTeam)
	r.Put("/{orgID}/team/{teamID}", h.HandleRenameTeam)
	r.Post("/{orgID}/team/{teamID}/members", h.HandleAddTeamMember)
	r.Delete("/{orgID}/team/{teamID}/members", h.HandleRemoveTeamMember)

	return r
}
