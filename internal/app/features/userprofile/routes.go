// internal/app/features/userprofile/routes.go
package userprofile

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/create", h.HandleCreate)
	r.Get("/{orgID}", h.ServeAll)
	r.Get("/{orgID}/{userID}", h.ServeProfile)
	r.Put("/{orgID}/{userID}", h.HandleUpdate)
	r.Delete("/{orgID}/{userID}", h.HandleDelete)
	return r
}
