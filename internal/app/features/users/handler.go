// internal/app/features/users/handler.go
package users

import (
	"errors"
	"net/http"

	userstore "github.com/spondon-bd/spondon/internal/app/store/users"
	"github.com/spondon-bd/spondon/internal/app/system/inputval"
	"github.com/spondon-bd/spondon/internal/app/system/jsonutil"
	"github.com/spondon-bd/spondon/internal/app/system/requestlog"
	"github.com/spondon-bd/spondon/internal/app/system/timeouts"
	"github.com/spondon-bd/spondon/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level entry point for Users.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a Users handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
	}
}

type createInput struct {
	Email string `validate:"notblank" label:"email"`
}

type setDisabledInput struct {
	IsDisabled *bool `json:"isDisabled" validate:"required" label:"isDisabled"`
}

// HandleCreate handles POST /users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if err := jsonutil.Decode(r, &u); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if res := inputval.Validate(createInput{Email: u.Email}); res.HasErrors() {
		jsonutil.Error(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create user")
	defer cancel()

	created, err := h.Users.Create(ctx, u)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		jsonutil.Message(w, http.StatusOK, "User already exists")
		return
	}
	if err != nil {
		h.Log.Error("create user failed", requestlog.Field(r.Context()), zap.String("email", u.Email), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	jsonutil.Write(w, http.StatusOK, jsonutil.Inserted(created.ID))
}

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("list users failed", requestlog.Field(r.Context()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	jsonutil.Write(w, http.StatusOK, users)
}

// ServeByEmail handles GET /users/{email}.
func (h *Handler) ServeByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonutil.Message(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.Log.Error("get user failed", requestlog.Field(r.Context()), zap.String("email", email), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	jsonutil.Write(w, http.StatusOK, u)
}

// HandleSetDisabled handles PATCH /users/{id} with body {"isDisabled": bool}.
func (h *Handler) HandleSetDisabled(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid id")
		return
	}
	var in setDisabledInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if res := inputval.Validate(in); res.HasErrors() {
		jsonutil.Error(w, http.StatusBadRequest, res.First())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update user")
	defer cancel()

	res, err := h.Users.SetDisabled(ctx, id, *in.IsDisabled)
	if err != nil {
		h.Log.Error("update user failed", requestlog.Field(r.Context()), zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if res.Matched == 0 {
		jsonutil.Message(w, http.StatusNotFound, "User not found")
		return
	}
	jsonutil.Write(w, http.StatusOK, jsonutil.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.Matched,
		ModifiedCount: res.Modified,
	})
}

// HandleDelete handles DELETE /users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete user")
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.Log.Error("delete user failed", requestlog.Field(r.Context()), zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.Error(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if n == 0 {
		jsonutil.Message(w, http.StatusNotFound, "User not found")
		return
	}
	jsonutil.Write(w, http.StatusOK, jsonutil.DeleteAck{Acknowledged: true, DeletedCount: n})
}
