// internal/app/features/requests/delete.go
package requests

import (
	"net/http"

	"github.com/spondon-bd/spondon/internal/app/system/jsonutil"
	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"github.com/spondon-bd/spondon/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /requests/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete request")
	defer cancel()

	n, err := h.Requests.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete request failed", requestlog.Field(r.Context()), zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to delete request")
		return
	}
	if n == 0 {
		jsonutil.Message(w, http.StatusNotFound, "Request not found")
		return
	}
	jsonutil.Message(w, http.StatusOK, "Request deleted")
}
