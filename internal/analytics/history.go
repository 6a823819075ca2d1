package analytics

import (
	"math"
	"time"
)

const (
	UnknownExerciseName = "Unknown exercise"

	dateKeyLayout = "2006-01-02"
)

type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"

	DefaultRange = Range30d
)

// ParseRange accepts exactly "7d" or "30d"; anything else falls back to the default range.
func ParseRange(value string) Range {
	switch Range(value) {
	case Range7d, Range30d:
		return Range(value)
	default:
		return DefaultRange
	}
}

func (r Range) Days() int {
	if r == Range7d {
		return 7
	}
	return 30
}

// HistoryEntry is one realized set-group within a workout.
type HistoryEntry struct {
	ID           string    `json:"id"`
	WorkoutID    *string   `json:"workoutId"`
	ExerciseID   *string   `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	MuscleGroup  *string   `json:"muscleGroup"`
	PerformedAt  time.Time `json:"performedAt"`
	Sets         float64   `json:"sets"`
	Reps         *float64  `json:"reps"`
	Weight       *float64  `json:"weight"`
	TotalVolume  float64   `json:"totalVolume"`
	Unit         *string   `json:"unit"`
}

type HistoryTrendPoint struct {
	Date        string  `json:"date"`
	TotalVolume float64 `json:"totalVolume"`
}

type VolumeSummary struct {
	Period      Range   `json:"period"`
	TotalVolume float64 `json:"totalVolume"`
}

// CalculateEntryVolume returns sets*reps*weight. Missing values count as 0, and
// the volume is 0 when any factor is 0 or not finite. Signs are kept as they are.
func CalculateEntryVolume(sets, reps, weight *float64) float64 {
	s, r, w := deref(sets), deref(reps), deref(weight)
	if !isFinite(s) || !isFinite(r) || !isFinite(w) {
		return 0
	}
	if s == 0 || r == 0 || w == 0 {
		return 0
	}
	return s * r * w
}

// BuildHistoryTrend sums entry volumes per calendar day over the trailing window
// ending on the reference day. The result holds one point per day, oldest first,
// with 0 for days without entries. Days are taken in the reference's location;
// a zero reference means now.
func BuildHistoryTrend(entries []HistoryEntry, rng Range, reference time.Time) []HistoryTrendPoint {
	refDay := startOfDay(resolveReference(reference))
	start := windowStart(refDay, rng.Days())

	totals := make(map[string]float64)
	for _, entry := range entries {
		performedDay := startOfDay(entry.PerformedAt.In(refDay.Location()))
		if performedDay.Before(start) || performedDay.After(refDay) {
			continue
		}
		totals[performedDay.Format(dateKeyLayout)] += entry.TotalVolume
	}

	days := rng.Days()
	trend := make([]HistoryTrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := refDay.AddDate(0, 0, -i).Format(dateKeyLayout)
		trend = append(trend, HistoryTrendPoint{
			Date:        key,
			TotalVolume: totals[key],
		})
	}

	return trend
}

// BuildVolumeSummary totals entry volumes over the trailing 7 and 30 day windows
// ending on the reference day (inclusive). The 7d total always comes first.
func BuildVolumeSummary(entries []HistoryEntry, reference time.Time) []VolumeSummary {
	refDay := startOfDay(resolveReference(reference))
	start7 := windowStart(refDay, Range7d.Days())
	start30 := windowStart(refDay, Range30d.Days())

	var total7, total30 float64
	for _, entry := range entries {
		performedDay := startOfDay(entry.PerformedAt.In(refDay.Location()))
		if performedDay.Before(start30) || performedDay.After(refDay) {
			continue
		}
		total30 += entry.TotalVolume
		if !performedDay.Before(start7) {
			total7 += entry.TotalVolume
		}
	}

	return []VolumeSummary{
		{Period: Range7d, TotalVolume: total7},
		{Period: Range30d, TotalVolume: total30},
	}
}

// RangeStart is the first instant (local midnight) of the window ending on the reference day.
func RangeStart(rng Range, reference time.Time) time.Time {
	return windowStart(startOfDay(resolveReference(reference)), rng.Days())
}

func windowStart(refDay time.Time, days int) time.Time {
	return refDay.AddDate(0, 0, -(days - 1))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func resolveReference(reference time.Time) time.Time {
	if reference.IsZero() {
		return time.Now()
	}
	return reference
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
