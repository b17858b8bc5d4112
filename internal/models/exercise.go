// Package models defines the domain types for maxlift.
package models

// Exercise is a lift the user tracks maxes for.
type Exercise struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsCustom bool   `json:"isCustom"`
}

// DefaultExercises is the set seeded on first use.
var DefaultExercises = []Exercise{
	{ID: "1", Name: "Bench Press", IsCustom: false},
	{ID: "2", Name: "Squat", IsCustom: false},
	{ID: "3", Name: "Deadlift", IsCustom: false},
	{ID: "4", Name: "Overhead Press", IsCustom: false},
	{ID: "5", Name: "Barbell Row", IsCustom: false},
	{ID: "6", Name: "Pull-ups", IsCustom: false},
	{ID: "7", Name: "Dips", IsCustom: false},
}

// ExerciseSummary is an exercise together with its current best, as shown in
// the exercise list.
type ExerciseSummary struct {
	Exercise
	LatestMax   *MaxRecord `json:"latestMax,omitempty"`
	RecordCount int        `json:"recordCount"`
}
