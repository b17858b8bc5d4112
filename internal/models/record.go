package models

// Unit is the weight unit of a record.
type Unit string

// Supported units.
const (
	UnitKg  Unit = "kg"
	UnitLbs Unit = "lbs"
)

// DateLayout is the ISO 8601 calendar date format used for record dates.
const DateLayout = "2006-01-02"

// MaxRecord is a personal-best weight logged for an exercise on a date.
type MaxRecord struct {
	ID         string  `json:"id"`
	ExerciseID string  `json:"exerciseId"`
	Weight     float64 `json:"weight"`
	Date       string  `json:"date"` // "2024-01-31"
	Unit       Unit    `json:"unit"`
}

// ProgressPoint is one point of an exercise's progress chart.
type ProgressPoint struct {
	Date   string  `json:"date"`
	Label  string  `json:"label"` // "Jan 31"
	Weight float64 `json:"weight"`
	Unit   Unit    `json:"unit"`
}
