package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/maxlift/internal/records"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(store *records.Store, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(store)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Route("/exercises", func(r chi.Router) {
		r.Get("/", h.ListExercises)
		r.Post("/", h.CreateExercise)
		r.Route("/{exerciseID}", func(r chi.Router) {
			r.Get("/", h.GetExercise)
			r.Delete("/", h.DeleteExercise)
			r.Get("/records", h.ListRecords)
			r.Post("/records", h.CreateRecord)
			r.Get("/max", h.LatestMax)
			r.Get("/progress", h.Progress)
		})
	})

	r.Delete("/records/{recordID}", h.DeleteRecord)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
