// internal/app/features/charters/routes.go
package charters

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{orgID}/{teamID}", h.ServeCharter)
	r.Post("/{orgID}/{teamID}", h.HandleAddSection)
	r.Put("/{orgID}/{teamID}", h.HandleUpdateSection)
	r.Delete("/{orgID}/{teamID}", h.HandleDeleteSection)
	return r
}
