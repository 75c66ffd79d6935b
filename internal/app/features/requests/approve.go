// internal/app/features/requests/approve.go
package requests

import (
	"errors"
	"net/http"

	"github.com/spondon-bd/spondon/internal/app/system/approval"
	"github.com/spondon-bd/spondon/internal/app/system/jsonutil"
	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"github.com/spondon-bd/spondon/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type approveInput struct {
	DonorEmail string `json:"donorEmail"`
}

// HandleApprove handles PATCH /requests/approve/{id}. The body is optional;
// when present it may name the donor who fulfils the request.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	var in approveInput
	if err := jsonutil.Decode(r, &in); err != nil && !errors.Is(err, jsonutil.ErrEmptyBody) {
		jsonutil.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "approve request")
	defer cancel()

	approved, err := h.Approval.Approve(ctx, id, in.DonorEmail)
	switch {
	case errors.Is(err, approval.ErrNotFound):
		jsonutil.Message(w, http.StatusNotFound, "Request not found")
		return
	case errors.Is(err, approval.ErrAlreadyApproved):
		jsonutil.Message(w, http.StatusConflict, "Request already approved")
		return
	case err != nil:
		h.Log.Error("approve request failed", requestlog.Field(r.Context()), zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to approve request")
		return
	}

	h.Log.Info("request approved", requestlog.Field(r.Context()),
		zap.String("id", id.Hex()),
		zap.String("approved_id", approved.ID.Hex()))
	jsonutil.Write(w, http.StatusOK, map[string]any{
		"message":         "Request approved successfully",
		"approvedRequest": approved,
	})
}
