// internal/app/features/donors/handler.go
package donors

import (
	"errors"
	"net/http"

	donorstore "github.com/spondon-bd/spondon/internal/app/store/donors"
	"github.com/spondon-bd/spondon/internal/app/system/inputval"
	"github.com/spondon-bd/spondon/internal/app/system/jsonutil"
	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"github.com/spondon-bd/spondon/internal/app/system/timeouts"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the active-donor routes.
type Handler struct {
	Donors *donorstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Donors: donorstore.New(db),
		Log:    logger,
	}
}

type activateInput struct {
	Email string `validate:"notblank" label:"email"`
}

// HandleActivate handles POST /active-donors.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	var d models.ActiveDonor
	if err := jsonutil.Decode(r, &d); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if res := inputval.Validate(activateInput{Email: d.Email}); res.HasErrors() {
		jsonutil.Error(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "activate donor")
	defer cancel()

	created, err := h.Donors.Activate(ctx, d)
	if errors.Is(err, donorstore.ErrAlreadyActive) {
		jsonutil.Message(w, http.StatusOK, "Donor already active")
		return
	}
	if err != nil {
		h.Log.Error("activate donor failed", requestlog.Field(r.Context()), zap.String("email", d.Email), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to activate donor")
		return
	}
	jsonutil.Write(w, http.StatusOK, map[string]any{
		"message": "Donor activated",
		"result":  jsonutil.Inserted(created.ID),
	})
}

// ServeList handles GET /active-donors.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list donors")
	defer cancel()

	donors, err := h.Donors.List(ctx)
	if err != nil {
		h.Log.Error("list donors failed", requestlog.Field(r.Context()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to fetch donors")
		return
	}
	jsonutil.Write(w, http.StatusOK, donors)
}

// ServeStatus handles GET /active-donors/{email}. The isActive flag in the
// response reflects whether the donor document exists right now.
func (h *Handler) ServeStatus(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get donor")
	defer cancel()

	st, err := h.Donors.Status(ctx, email)
	if err != nil {
		h.Log.Error("get donor failed", requestlog.Field(r.Context()), zap.String("email", email), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to fetch donor details")
		return
	}
	if !st.IsActive {
		jsonutil.Write(w, http.StatusNotFound, map[string]any{
			"message":  "Donor not found",
			"isActive": false,
		})
		return
	}
	jsonutil.Write(w, http.StatusOK, st)
}

// HandleDeactivate handles DELETE /active-donors/{email}.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "deactivate donor")
	defer cancel()

	n, err := h.Donors.Deactivate(ctx, email)
	if err != nil {
		h.Log.Error("deactivate donor failed", requestlog.Field(r.Context()), zap.String("email", email), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to deactivate donor")
		return
	}
	if n == 0 {
		jsonutil.Message(w, http.StatusNotFound, "Donor not found")
		return
	}
	jsonutil.Message(w, http.StatusOK, "Donor deactivated")
}
