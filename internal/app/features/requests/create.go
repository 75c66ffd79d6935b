// internal/app/features/requests/create.go
package requests

import (
	"net/http"

	"github.com/spondon-bd/spondon/internal/app/system/inputval"
	"github.com/spondon-bd/spondon/internal/app/system/jsonutil"
	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"github.com/spondon-bd/spondon/internal/app/system/timeouts"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"go.uber.org/zap"
)

type createInput struct {
	RequesterEmail string `validate:"notblank" label:"requesterEmail"`
	BloodGroup     string `validate:"notblank" label:"bloodGroup"`
}

// HandleCreate handles POST /requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.BloodRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in := createInput{RequesterEmail: req.RequesterEmail, BloodGroup: req.BloodGroup}
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.Error(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create request")
	defer cancel()

	created, err := h.Requests.Create(ctx, req)
	if err != nil {
		h.Log.Error("create request failed", requestlog.Field(r.Context()),
			zap.String("requester_email", req.RequesterEmail), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to create request")
		return
	}
	jsonutil.Write(w, http.StatusOK, map[string]any{
		"message": "Request created",
		"result":  jsonutil.Inserted(created.ID),
	})
}
