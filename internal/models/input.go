package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxExerciseNameLen bounds exercise names, in runes.
const MaxExerciseNameLen = 100

// NewExercise is user input for creating an exercise.
type NewExercise struct {
	Name string `json:"name"`
}

// Validate trims the name and checks it is present.
func (in *NewExercise) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, MaxExerciseNameLen)),
	)
}

// NewRecord is user input for logging a max.
type NewRecord struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
	Unit   Unit    `json:"unit"`
}

// Validate checks weight is positive, the date is a calendar date and the
// unit, if given, is supported.
func (in *NewRecord) Validate() error {
	in.Date = strings.TrimSpace(in.Date)
	return validation.ValidateStruct(in,
		validation.Field(&in.Weight, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&in.Date, validation.Required, validation.Date(DateLayout)),
		validation.Field(&in.Unit, validation.In(UnitKg, UnitLbs)),
	)
}
