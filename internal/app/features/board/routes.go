// internal/app/features/board/routes.go
package board

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{orgID}/{teamID}", h.ServeBoard)
	r.Post("/{orgID}/{teamID}", h.HandlePost)
	r.Delete("/{orgID}/{teamID}", h.HandleDeletePost)
	r.Post("/{orgID}/{teamID}/react", h.HandleReact)
	return r
}
