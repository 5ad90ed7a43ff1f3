package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nokokiii/API-Engineering-Exam/internal/app"
)

// NewRouter mounts the users resource. Anything else is answered with the
// JSON route-not-found or method-not-allowed errors.
func NewRouter(a *app.App) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(Logging)
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, app.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, app.ErrMethodNotAllowed)
	})

	h := NewUserHandler(a)
	r.Get("/users", h.ListUsers)
	r.Post("/users", h.CreateUser)
	r.Get("/users/{id:[0-9]+}", h.GetUser)
	r.Put("/users/{id:[0-9]+}", h.ReplaceUser)
	r.Patch("/users/{id:[0-9]+}", h.PatchUser)
	r.Delete("/users/{id:[0-9]+}", h.DeleteUser)

	return r
}
