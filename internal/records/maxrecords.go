package records

import (
	"context"
	"slices"
	"time"

	"github.com/starford/maxlift/internal/models"
)

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// compareDates orders records chronologically. Unparseable dates sort before
// every valid date and compare equal to each other.
func compareDates(a, b models.MaxRecord) int {
	ta, okA := parseDate(a.Date)
	tb, okB := parseDate(b.Date)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	}
	return ta.Compare(tb)
}

// recordsFor filters records by exercise and stably sorts them by date.
func recordsFor(records []models.MaxRecord, exerciseID string) []models.MaxRecord {
	out := []models.MaxRecord{}
	for _, r := range records {
		if r.ExerciseID == exerciseID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, compareDates)
	return out
}

// maxOf returns the heaviest of chronologically sorted records; ties keep the
// earliest.
func maxOf(sorted []models.MaxRecord) (models.MaxRecord, bool) {
	if len(sorted) == 0 {
		return models.MaxRecord{}, false
	}
	best := sorted[0]
	for _, r := range sorted[1:] {
		if r.Weight > best.Weight {
			best = r
		}
	}
	return best, true
}

// ListRecordsForExercise returns the exercise's records in chronological
// order, ties in storage order. Unknown exercises yield an empty slice.
func (s *Store) ListRecordsForExercise(ctx context.Context, exerciseID string) ([]models.MaxRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return recordsFor(records, exerciseID), nil
}

// AddRecord appends a new record. An empty unit defaults to kg. Weight, date
// and the exercise reference are stored as given.
func (s *Store) AddRecord(ctx context.Context, exerciseID string, weight float64, date string, unit models.Unit) (models.MaxRecord, error) {
	if unit == "" {
		unit = models.UnitKg
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadRecords(ctx)
	if err != nil {
		return models.MaxRecord{}, err
	}
	r := models.MaxRecord{
		ID:         s.newID(),
		ExerciseID: exerciseID,
		Weight:     weight,
		Date:       date,
		Unit:       unit,
	}
	if err := s.saveRecords(ctx, append(records, r)); err != nil {
		return models.MaxRecord{}, err
	}
	s.notify(RecordCreated, r.ID)
	return r, nil
}

// DeleteRecord removes the record with the given id. Unknown ids are a no-op.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.MaxRecord, 0, len(records))
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if err := s.saveRecords(ctx, kept); err != nil {
		return err
	}
	if len(kept) != len(records) {
		s.notify(RecordDeleted, id)
	}
	return nil
}

// LatestMaxForExercise returns the heaviest record for the exercise, the
// earliest one when several share the maximum. ok is false when the exercise
// has no records.
func (s *Store) LatestMaxForExercise(ctx context.Context, exerciseID string) (models.MaxRecord, bool, error) {
	sorted, err := s.ListRecordsForExercise(ctx, exerciseID)
	if err != nil {
		return models.MaxRecord{}, false, err
	}
	best, ok := maxOf(sorted)
	return best, ok, nil
}
