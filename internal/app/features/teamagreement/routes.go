// internal/app/features/teamagreement/routes.go
package teamagreement

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/create", h.HandleCreate)
	r.Get("/{orgID}", h.ServeAgreement)
	r.Put("/{orgID}", h.HandleUpdate)
	r.Delete("/{orgID}", h.HandleDelete)
	return r
}
