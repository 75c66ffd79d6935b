// internal/app/features/volunteers/handler.go
package volunteers

import (
	"errors"
	"net/http"

	volunteerstore "github.com/spondon-bd/spondon/internal/app/store/volunteers"
	"github.com/spondon-bd/spondon/internal/app/system/inputval"
	"github.com/spondon-bd/spondon/internal/app/system/jsonutil"
	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"github.com/spondon-bd/spondon/internal/app/system/timeouts"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Volunteers *volunteerstore.Store
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Volunteers: volunteerstore.New(db),
		Log:        logger,
	}
}

type createInput struct {
	Email string `validate:"notblank" label:"email"`
}

// HandleCreate handles POST /volunteers.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var v models.Volunteer
	if err := jsonutil.Decode(r, &v); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if res := inputval.Validate(createInput{Email: v.Email}); res.HasErrors() {
		jsonutil.Error(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create volunteer")
	defer cancel()

	created, err := h.Volunteers.Create(ctx, v)
	if errors.Is(err, volunteerstore.ErrDuplicateVolunteer) {
		jsonutil.Message(w, http.StatusOK, "Volunteer already exists")
		return
	}
	if err != nil {
		h.Log.Error("create volunteer failed", requestlog.Field(r.Context()), zap.String("email", v.Email), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to add volunteer")
		return
	}
	jsonutil.Write(w, http.StatusOK, map[string]any{
		"message": "Volunteer added",
		"result":  jsonutil.Inserted(created.ID),
	})
}

// ServeList handles GET /volunteers.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list volunteers")
	defer cancel()

	vols, err := h.Volunteers.List(ctx)
	if err != nil {
		h.Log.Error("list volunteers failed", requestlog.Field(r.Context()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to fetch volunteers")
		return
	}
	jsonutil.Write(w, http.StatusOK, vols)
}

// ServeByEmail handles GET /volunteers/{email}.
func (h *Handler) ServeByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get volunteer")
	defer cancel()

	v, err := h.Volunteers.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonutil.Message(w, http.StatusNotFound, "Volunteer not found")
		return
	}
	if err != nil {
		h.Log.Error("get volunteer failed", requestlog.Field(r.Context()), zap.String("email", email), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to fetch volunteer")
		return
	}
	jsonutil.Write(w, http.StatusOK, v)
}

// HandleDelete handles DELETE /volunteers/{email}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete volunteer")
	defer cancel()

	n, err := h.Volunteers.Delete(ctx, email)
	if err != nil {
		h.Log.Error("delete volunteer failed", requestlog.Field(r.Context()), zap.String("email", email), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to delete volunteer")
		return
	}
	if n == 0 {
		jsonutil.Message(w, http.StatusNotFound, "Volunteer not found")
		return
	}
	jsonutil.Message(w, http.StatusOK, "Volunteer deleted")
}
