package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/maxlift/internal/records"
)

// Handler holds API route handlers.
type Handler struct {
	store *records.Store
}

// NewHandler creates a new Handler.
func NewHandler(store *records.Store) *Handler {
	return &Handler{store: store}
}

// ListExercises handles GET /api/exercises.
//
//	@Summary		List exercises with their current max
//	@Tags			exercises
//	@Produce		json
//	@Success		200	{object}	ExerciseListResponse
//	@Security		BearerAuth
//	@Router			/exercises [get]
func (h *Handler) ListExercises(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.Summaries(r.Context())
	if err != nil {
		writeStoreError(w, "list exercises", err)
		return
	}
	writeJSON(w, http.StatusOK, ExerciseListResponse{Exercises: summaries})
}

// CreateExercise handles POST /api/exercises.
//
//	@Summary		Create a custom exercise
//	@Tags			exercises
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateExerciseRequest	true	"Exercise to create"
//	@Success		201		{object}	models.Exercise
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/exercises [post]
func (h *Handler) CreateExercise(w http.ResponseWriter, r *http.Request) {
	var req CreateExerciseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	e, err := h.store.AddExercise(r.Context(), req.Name)
	if err != nil {
		writeStoreError(w, "create exercise", err, slog.String("name", req.Name))
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// GetExercise handles GET /api/exercises/{exerciseID}.
//
//	@Summary		Get a single exercise
//	@Tags			exercises
//	@Produce		json
//	@Param			exerciseID	path		string	true	"Exercise ID"
//	@Success		200			{object}	models.Exercise
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/exercises/{exerciseID} [get]
func (h *Handler) GetExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "exerciseID")
	e, err := h.store.GetExercise(r.Context(), id)
	if err != nil {
		writeStoreError(w, "get exercise", err, slog.String("exercise_id", id))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteExercise handles DELETE /api/exercises/{exerciseID}.
// The exercise's records are deleted with it.
//
//	@Summary		Delete an exercise and its records
//	@Tags			exercises
//	@Param			exerciseID	path	string	true	"Exercise ID"
//	@Success		204			"Exercise deleted"
//	@Security		BearerAuth
//	@Router			/exercises/{exerciseID} [delete]
func (h *Handler) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "exerciseID")
	if err := h.store.DeleteExercise(r.Context(), id); err != nil {
		writeStoreError(w, "delete exercise", err, slog.String("exercise_id", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRecords handles GET /api/exercises/{exerciseID}/records.
//
//	@Summary		List an exercise's records, oldest first
//	@Tags			records
//	@Produce		json
//	@Param			exerciseID	path		string	true	"Exercise ID"
//	@Success		200			{object}	RecordListResponse
//	@Security		BearerAuth
//	@Router			/exercises/{exerciseID}/records [get]
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "exerciseID")
	recs, err := h.store.ListRecordsForExercise(r.Context(), id)
	if err != nil {
		writeStoreError(w, "list records", err, slog.String("exercise_id", id))
		return
	}
	writeJSON(w, http.StatusOK, RecordListResponse{Records: recs})
}

// CreateRecord handles POST /api/exercises/{exerciseID}/records.
//
//	@Summary		Log a max weight
//	@Tags			records
//	@Accept			json
//	@Produce		json
//	@Param			exerciseID	path		string				true	"Exercise ID"
//	@Param			body		body		CreateRecordRequest	true	"Record to log"
//	@Success		201			{object}	models.MaxRecord
//	@Failure		400			{object}	errResponse
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/exercises/{exerciseID}/records [post]
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "exerciseID")
	var req CreateRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if _, err := h.store.GetExercise(r.Context(), id); err != nil {
		writeStoreError(w, "create record", err, slog.String("exercise_id", id))
		return
	}
	rec, err := h.store.AddRecord(r.Context(), id, req.Weight, req.Date, req.Unit)
	if err != nil {
		writeStoreError(w, "create record", err, slog.String("exercise_id", id))
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// LatestMax handles GET /api/exercises/{exerciseID}/max.
//
//	@Summary		Get the heaviest record of an exercise
//	@Tags			records
//	@Produce		json
//	@Param			exerciseID	path		string	true	"Exercise ID"
//	@Success		200			{object}	models.MaxRecord
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/exercises/{exerciseID}/max [get]
func (h *Handler) LatestMax(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "exerciseID")
	best, ok, err := h.store.LatestMaxForExercise(r.Context(), id)
	if err != nil {
		writeStoreError(w, "latest max", err, slog.String("exercise_id", id))
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("no records"))
		return
	}
	writeJSON(w, http.StatusOK, best)
}

// Progress handles GET /api/exercises/{exerciseID}/progress.
//
//	@Summary		Get an exercise's progress chart series
//	@Tags			records
//	@Produce		json
//	@Param			exerciseID	path		string	true	"Exercise ID"
//	@Success		200			{object}	ProgressResponse
//	@Security		BearerAuth
//	@Router			/exercises/{exerciseID}/progress [get]
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "exerciseID")
	points, err := h.store.Progress(r.Context(), id)
	if err != nil {
		writeStoreError(w, "progress", err, slog.String("exercise_id", id))
		return
	}
	writeJSON(w, http.StatusOK, ProgressResponse{Points: points})
}

// DeleteRecord handles DELETE /api/records/{recordID}.
//
//	@Summary		Delete a record
//	@Tags			records
//	@Param			recordID	path	string	true	"Record ID"
//	@Success		204			"Record deleted"
//	@Security		BearerAuth
//	@Router			/records/{recordID} [delete]
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "recordID")
	if err := h.store.DeleteRecord(r.Context(), id); err != nil {
		writeStoreError(w, "delete record", err, slog.String("record_id", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
