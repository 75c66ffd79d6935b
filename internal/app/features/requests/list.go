// internal/app/features/requests/list.go
package requests

import (
	"net/http"

	requeststore "github.com/spondon-bd/spondon/internal/app/store/requests"
	"github.com/spondon-bd/spondon/internal/app/system/jsonutil"
	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"github.com/spondon-bd/spondon/internal/app/system/normalize"
	"github.com/spondon-bd/spondon/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeList handles GET /requests?bloodGroup=&email=.
// A "+" in bloodGroup must be sent percent-encoded (%2B).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.serveFiltered(w, r, requeststore.Filter{
		BloodGroup:     normalize.QueryParam(q.Get("bloodGroup")),
		RequesterEmail: normalize.QueryParam(q.Get("email")),
	})
}

// ServeByRequester handles GET /requests/user/{email}.
func (h *Handler) ServeByRequester(w http.ResponseWriter, r *http.Request) {
	h.serveFiltered(w, r, requeststore.Filter{RequesterEmail: chi.URLParam(r, "email")})
}

func (h *Handler) serveFiltered(w http.ResponseWriter, r *http.Request, f requeststore.Filter) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list requests")
	defer cancel()

	reqs, err := h.Requests.List(ctx, f)
	if err != nil {
		h.Log.Error("list requests failed", requestlog.Field(r.Context()),
			zap.String("blood_group", f.BloodGroup),
			zap.String("requester_email", f.RequesterEmail),
			zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}
	jsonutil.Write(w, http.StatusOK, reqs)
}
