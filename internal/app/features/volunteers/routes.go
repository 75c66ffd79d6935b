// internal/app/features/volunteers/routes.go
package volunteers

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleCreate)
	r.Get("/", h.ServeList)
	r.Get("/{email}", h.ServeByEmail)
	r.Delete("/{email}", h.HandleDelete)
	return r
}
