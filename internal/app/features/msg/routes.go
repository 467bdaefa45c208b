// internal/app/features/msg/routes.go
package msg

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{orgID}/{teamID}", h.ServeLog)
	r.Post("/{orgID}/{teamID}", h.HandlePost)
	r.Put("/{orgID}/{teamID}", h.HandleFlag)
	r.Delete("/{orgID}/{teamID}", h.HandleDelete)
	return r
}
