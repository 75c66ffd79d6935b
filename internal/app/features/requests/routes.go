// internal/app/features/requests/routes.go
package requests

import "github.com/go-chi/chi/v5"

// Routes mounts the blood-request routes under /requests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/user/{email}", h.ServeByRequester)
	r.Delete("/{id}", h.HandleDelete)
	r.Patch("/approve/{id}", h.HandleApprove)
	return r
}
