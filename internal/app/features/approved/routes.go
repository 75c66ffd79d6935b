// internal/app/features/approved/routes.go
package approved

import "github.com/go-chi/chi/v5"

// Routes mounts the approved-request routes under /approved-requests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/donor/{email}", h.ServeByDonor)
	r.Get("/volunteer/{email}", h.ServeByRequester)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
