// internal/app/features/pulse/routes.go
package pulse

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/create/{orgID}", h.HandleSubmit)
	r.Get("/{orgID}", h.ServeHistory)
	r.Get("/{orgID}/{week}", h.ServeWeek)
	return r
}
