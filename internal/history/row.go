package history

import (
	"time"

	"github.com/2beens/liftstats/internal/analytics"
)

// Row is a workout entry joined with its workout and (optional) exercise.
type Row struct {
	ID           string
	WorkoutID    *string
	ExerciseID   *string
	Sets         *float64
	Reps         *float64
	Weight       *float64
	Unit         *string
	CreatedAt    *time.Time
	ScheduledFor *time.Time
	// joined
	JoinedWorkoutID  *string
	JoinedExerciseID *string
	ExerciseName     *string
	MuscleGroup      *string
}

type VolumeViewRow struct {
	Period      *string
	TotalVolume *float64
}

type ListParams struct {
	OwnerID string
	Since   time.Time
	Limit   int
}

// MapRows converts rows into history entries. The performed date is the workout
// schedule, else the entry creation time, else now. Volume is always recomputed.
func MapRows(rows []Row, now time.Time) []analytics.HistoryEntry {
	entries := make([]analytics.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		performedAt := now
		switch {
		case row.ScheduledFor != nil:
			performedAt = *row.ScheduledFor
		case row.CreatedAt != nil:
			performedAt = *row.CreatedAt
		}

		exerciseName := analytics.UnknownExerciseName
		if row.ExerciseName != nil {
			exerciseName = *row.ExerciseName
		}

		var sets float64
		if row.Sets != nil {
			sets = *row.Sets
		}

		entries = append(entries, analytics.HistoryEntry{
			ID:           row.ID,
			WorkoutID:    firstNonNil(row.WorkoutID, row.JoinedWorkoutID),
			ExerciseID:   firstNonNil(row.ExerciseID, row.JoinedExerciseID),
			ExerciseName: exerciseName,
			MuscleGroup:  row.MuscleGroup,
			PerformedAt:  performedAt,
			Sets:         sets,
			Reps:         row.Reps,
			Weight:       row.Weight,
			TotalVolume:  analytics.CalculateEntryVolume(row.Sets, row.Reps, row.Weight),
			Unit:         row.Unit,
		})
	}
	return entries
}

// SummaryFromView folds volume view rows into the fixed [7d, 30d] summary.
// Rows with an unknown period are ignored. Reports false when there are no rows.
func SummaryFromView(rows []VolumeViewRow) ([]analytics.VolumeSummary, bool) {
	if len(rows) == 0 {
		return nil, false
	}

	totals := map[analytics.Range]float64{}
	for _, row := range rows {
		if row.Period == nil {
			continue
		}
		period := analytics.Range(*row.Period)
		if period != analytics.Range7d && period != analytics.Range30d {
			continue
		}
		if row.TotalVolume != nil {
			totals[period] += *row.TotalVolume
		}
	}

	return []analytics.VolumeSummary{
		{Period: analytics.Range7d, TotalVolume: totals[analytics.Range7d]},
		{Period: analytics.Range30d, TotalVolume: totals[analytics.Range30d]},
	}, true
}

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
