package records

import (
	"context"

	"github.com/starford/maxlift/internal/models"
)

const chartLabelLayout = "Jan 02"

// Progress returns the exercise's chart series in chronological order.
func (s *Store) Progress(ctx context.Context, exerciseID string) ([]models.ProgressPoint, error) {
	sorted, err := s.ListRecordsForExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	points := make([]models.ProgressPoint, len(sorted))
	for i, r := range sorted {
		label := r.Date
		if t, ok := parseDate(r.Date); ok {
			label = t.Format(chartLabelLayout)
		}
		points[i] = models.ProgressPoint{
			Date:   r.Date,
			Label:  label,
			Weight: r.Weight,
			Unit:   r.Unit,
		}
	}
	return points, nil
}

// Summaries returns every exercise with its current max and record count,
// reading each collection once.
func (s *Store) Summaries(ctx context.Context) ([]models.ExerciseSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercises, err := s.exercisesOrSeed(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.ExerciseSummary, len(exercises))
	for i, e := range exercises {
		sorted := recordsFor(records, e.ID)
		out[i] = models.ExerciseSummary{Exercise: e, RecordCount: len(sorted)}
		if best, ok := maxOf(sorted); ok {
			out[i].LatestMax = &best
		}
	}
	return out, nil
}
