// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes mounts the user routes under /users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/{email}", h.ServeByEmail)
	r.Patch("/{id}", h.HandleSetDisabled)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
