// internal/app/features/donors/routes.go
package donors

import "github.com/go-chi/chi/v5"

// Routes mounts the donor routes under /active-donors.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleActivate)
	r.Get("/", h.ServeList)
	r.Get("/{email}", h.ServeStatus)
	r.Delete("/{email}", h.HandleDeactivate)
	return r
}
