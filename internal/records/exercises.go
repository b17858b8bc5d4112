package records

import (
	"context"
	"fmt"

	"github.com/starford/maxlift/internal/apperr"
	"github.com/starford/maxlift/internal/kv"
	"github.com/starford/maxlift/internal/models"
)

func defaultExercises() []models.Exercise {
	return append([]models.Exercise(nil), models.DefaultExercises...)
}

// Seed writes the default exercises if the exercise collection has never been
// stored. It reports whether it seeded.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.loadExercises(ctx)
	if err != nil || ok {
		return false, err
	}
	if err := s.saveExercises(ctx, defaultExercises()); err != nil {
		return false, err
	}
	return true, nil
}

// exercisesOrSeed loads exercises, seeding the defaults on first access.
// Callers hold s.mu.
func (s *Store) exercisesOrSeed(ctx context.Context) ([]models.Exercise, error) {
	exercises, ok, err := s.loadExercises(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return exercises, nil
	}
	exercises = defaultExercises()
	if err := s.saveExercises(ctx, exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// ListExercises returns all exercises in stored order.
func (s *Store) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exercisesOrSeed(ctx)
}

// GetExercise returns the exercise with the given id.
func (s *Store) GetExercise(ctx context.Context, id string) (models.Exercise, error) {
	exercises, err := s.ListExercises(ctx)
	if err != nil {
		return models.Exercise{}, err
	}
	for _, e := range exercises {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Exercise{}, fmt.Errorf("records: exercise %s: %w", id, apperr.ErrNotFound)
}

// AddExercise appends a new custom exercise. Names are not deduplicated.
func (s *Store) AddExercise(ctx context.Context, name string) (models.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercises, err := s.exercisesOrSeed(ctx)
	if err != nil {
		return models.Exercise{}, err
	}
	e := models.Exercise{
		ID:       s.newID(),
		Name:     name,
		IsCustom: true,
	}
	if err := s.saveExercises(ctx, append(exercises, e)); err != nil {
		return models.Exercise{}, err
	}
	s.notify(ExerciseCreated, e.ID)
	return e, nil
}

// DeleteExercise removes the exercise and every record referencing it.
// Deleting an unknown id is a no-op. Both collections are written through
// kv.SetAll, so providers that batch store them as one unit.
func (s *Store) DeleteExercise(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercises, err := s.exercisesOrSeed(ctx)
	if err != nil {
		return err
	}
	records, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}

	keptExercises := make([]models.Exercise, 0, len(exercises))
	for _, e := range exercises {
		if e.ID != id {
			keptExercises = append(keptExercises, e)
		}
	}
	keptRecords := make([]models.MaxRecord, 0, len(records))
	for _, r := range records {
		if r.ExerciseID != id {
			keptRecords = append(keptRecords, r)
		}
	}

	exEntry, err := encode(ExercisesKey, keptExercises)
	if err != nil {
		return err
	}
	recEntry, err := encode(RecordsKey, keptRecords)
	if err != nil {
		return err
	}
	if err := kv.SetAll(ctx, s.kv, []kv.Entry{exEntry, recEntry}); err != nil {
		return fmt.Errorf("records: delete exercise %s: %w", id, err)
	}

	if len(keptExercises) != len(exercises) {
		s.notify(ExerciseDeleted, id)
	}
	return nil
}
