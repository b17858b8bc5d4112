package api

import "github.com/starford/maxlift/internal/models"

// CreateExerciseRequest is the request body for creating an exercise.
type CreateExerciseRequest = models.NewExercise

// CreateRecordRequest is the request body for logging a max.
type CreateRecordRequest = models.NewRecord

// ExerciseListResponse wraps the exercise list with each exercise's current max.
type ExerciseListResponse struct {
	Exercises []models.ExerciseSummary `json:"exercises" validate:"required"`
}

// RecordListResponse wraps an exercise's records in chronological order.
type RecordListResponse struct {
	Records []models.MaxRecord `json:"records" validate:"required"`
}

// ProgressResponse wraps an exercise's chart series.
type ProgressResponse struct {
	Points []models.ProgressPoint `json:"points" validate:"required"`
}
