// Package records implements the record store: exercises and their
// max-weight records persisted as two JSON collections in a kv.Provider.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/starford/maxlift/internal/apperr"
	"github.com/starford/maxlift/internal/kv"
	"github.com/starford/maxlift/internal/models"
)

// Storage keys, one per collection.
const (
	ExercisesKey = "gym-tracker-exercises"
	RecordsKey   = "gym-tracker-records"
)

// Change kinds passed to a ChangeFunc.
const (
	ExerciseCreated = "exercise.created"
	ExerciseDeleted = "exercise.deleted"
	RecordCreated   = "record.created"
	RecordDeleted   = "record.deleted"
)

// ChangeFunc is called after a successful mutation with its kind and the id
// of the affected exercise or record.
type ChangeFunc func(kind, id string)

// Option configures a Store.
type Option func(*Store)

// WithOnChange registers a callback for successful mutations.
func WithOnChange(fn ChangeFunc) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// WithIDFunc replaces the id generator used for new exercises and records.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Store owns the exercise and record collections. Every operation reads the
// whole collection, and every write stores the whole collection back.
//
// mu serialises read-modify-write cycles so concurrent API callers cannot
// lose each other's updates.
type Store struct {
	kv       kv.Provider
	onChange ChangeFunc
	newID    func() string

	mu sync.Mutex
}

// New creates a Store over p.
func New(p kv.Provider, opts ...Option) *Store {
	s := &Store{
		kv:    p,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) notify(kind, id string) {
	if s.onChange != nil {
		s.onChange(kind, id)
	}
}

// loadExercises returns the stored exercises. ok is false when the key has
// never been written.
func (s *Store) loadExercises(ctx context.Context) ([]models.Exercise, bool, error) {
	var out []models.Exercise
	ok, err := s.load(ctx, ExercisesKey, &out)
	if err != nil || !ok {
		return nil, ok, err
	}
	return nonNilSlice(out), true, nil
}

// loadRecords returns the stored records; a missing key is an empty collection.
func (s *Store) loadRecords(ctx context.Context) ([]models.MaxRecord, error) {
	var out []models.MaxRecord
	if _, err := s.load(ctx, RecordsKey, &out); err != nil {
		return nil, err
	}
	return nonNilSlice(out), nil
}

func (s *Store) load(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("records: read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("records: decode %s: %w: %w", key, apperr.ErrCorruptData, err)
	}
	return true, nil
}

func (s *Store) saveExercises(ctx context.Context, exercises []models.Exercise) error {
	return s.save(ctx, ExercisesKey, exercises)
}

func (s *Store) saveRecords(ctx context.Context, records []models.MaxRecord) error {
	return s.save(ctx, RecordsKey, records)
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	e, err := encode(key, v)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, e.Key, e.Value); err != nil {
		return fmt.Errorf("records: write %s: %w", key, err)
	}
	return nil
}

func encode(key string, v any) (kv.Entry, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return kv.Entry{}, fmt.Errorf("records: encode %s: %w", key, err)
	}
	return kv.Entry{Key: key, Value: data}, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
