package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nokokiii/API-Engineering-Exam/internal/app"
	"github.com/nokokiii/API-Engineering-Exam/internal/models"
)

type UserHandler struct {
	app *app.App
}

func NewUserHandler(app *app.App) *UserHandler {
	return &UserHandler{app: app}
}

// userID reads the {id} route parameter. The route pattern only admits
// digits, so a failure here means the value overflowed int64.
func userID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// decodeBody accepts exactly one JSON object. Trailing data, null and
// non-object values are malformed.
func decodeBody(r *http.Request) (models.UserPatch, error) {
	var p models.UserPatch
	dec := json.NewDecoder(r.Body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return p, app.ErrMalformedBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return p, app.ErrMalformedBody
	}
	if len(raw) == 0 || raw[0] != '{' {
		return p, app.ErrMalformedBody
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, app.ErrMalformedBody
	}
	return p, nil
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.app.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, r, app.ErrRouteNotFound)
		return
	}

	user, err := h.app.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	p, err := decodeBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.app.CreateUser(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, userCreated)
}

func (h *UserHandler) ReplaceUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, r, app.ErrRouteNotFound)
		return
	}
	p, err := decodeBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.app.ReplaceUser(r.Context(), id, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if created {
		writeJSON(w, http.StatusCreated, userCreated)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) PatchUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, r, app.ErrRouteNotFound)
		return
	}
	p, err := decodeBody(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.app.PatchUser(r.Context(), id, p); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, r, app.ErrRouteNotFound)
		return
	}

	if err := h.app.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
