// internal/app/features/approved/handler.go
package approved

import (
	"net/http"

	approvedstore "github.com/spondon-bd/spondon/internal/app/store/approved"
	"github.com/spondon-bd/spondon/internal/app/system/jsonutil"
	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"github.com/spondon-bd/spondon/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the read and cleanup routes for approved requests.
// Approved requests are only created by the approval workflow.
type Handler struct {
	Approved *approvedstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Approved: approvedstore.New(db),
		Log:      logger,
	}
}

// ServeList handles GET /approved-requests.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	h.serveFiltered(w, r, approvedstore.Filter{}, "Failed to fetch approved requests")
}

// ServeByDonor handles GET /approved-requests/donor/{email}.
func (h *Handler) ServeByDonor(w http.ResponseWriter, r *http.Request) {
	f := approvedstore.Filter{DonorEmail: chi.URLParam(r, "email")}
	h.serveFiltered(w, r, f, "Failed to fetch donor's approved requests")
}

// ServeByRequester handles GET /approved-requests/volunteer/{email}, which
// lists the approved requests a volunteer submitted.
func (h *Handler) ServeByRequester(w http.ResponseWriter, r *http.Request) {
	f := approvedstore.Filter{RequesterEmail: chi.URLParam(r, "email")}
	h.serveFiltered(w, r, f, "Failed to fetch volunteer's approved requests")
}

func (h *Handler) serveFiltered(w http.ResponseWriter, r *http.Request, f approvedstore.Filter, failMsg string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list approved requests")
	defer cancel()

	list, err := h.Approved.List(ctx, f)
	if err != nil {
		h.Log.Error("list approved requests failed", requestlog.Field(r.Context()),
			zap.String("donor_email", f.DonorEmail),
			zap.String("requester_email", f.RequesterEmail),
			zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, failMsg)
		return
	}
	jsonutil.Write(w, http.StatusOK, list)
}

// HandleDelete handles DELETE /approved-requests/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete approved request")
	defer cancel()

	n, err := h.Approved.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete approved request failed", requestlog.Field(r.Context()), zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to delete approved request")
		return
	}
	if n == 0 {
		jsonutil.Message(w, http.StatusNotFound, "Approved request not found")
		return
	}
	jsonutil.Message(w, http.StatusOK, "Approved request deleted successfully")
}
