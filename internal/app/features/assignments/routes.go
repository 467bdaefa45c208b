// internal/app/features/assignments/routes.go
package assignments

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{orgID}", h.ServeList)
	r.Post("/{orgID}", h.HandleCreate)
	r.Get("/{orgID}/team/{teamID}", h.ServeTeamAssignments)
	r.Get("/{orgID}/{assignmentID}", h.ServeOne)
	r.Put("/{orgID}/{assignmentID}", h.HandleUpdate)
	r.Delete("/{orgID}/{assignmentID}", h.HandleDelete)
	r.Post("/{orgID}/{assignmentID}/team/{teamID}", h.HandleAddTodo)
	r.Put("/{orgID}/{assignmentID}/team/{teamID}", h.HandlePatchTodo)
	r.Delete("/{orgID}/{assignmentID}/team/{teamID}", h.HandleDeleteTodo)

	return r
}
