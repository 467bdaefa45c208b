// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/self", h.ServeSelf)
	r.Get("/{userID}", h.ServeUser)
	r.Put("/{userID}", h.HandleUpdate)
	r.Put("/{userID}/information", h.HandleUpdateInformation)
	r.Delete("/{userID}", h.HandleDelete)
	return r
}
