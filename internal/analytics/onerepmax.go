package analytics

import (
	"math"
	"strings"
	"time"
)

type Method string

const (
	MethodEpley   Method = "epley"
	MethodBrzycki Method = "brzycki"

	DefaultMethod = MethodEpley

	brzyckiMaxReps = 36
)

var Methods = []Method{MethodEpley, MethodBrzycki}

// NormaliseMethod lower-cases the input and falls back to the default method
// when it names no supported formula.
func NormaliseMethod(input string) Method {
	lower := Method(strings.ToLower(input))
	for _, m := range Methods {
		if lower == m {
			return m
		}
	}
	return DefaultMethod
}

// ParseMethod is the strict variant of NormaliseMethod: an empty input yields the
// default method, an unsupported one a ValidationError.
func ParseMethod(input string) (Method, error) {
	if input == "" {
		return DefaultMethod, nil
	}
	lower := Method(strings.ToLower(input))
	for _, m := range Methods {
		if lower == m {
			return m, nil
		}
	}
	return "", newValidationError("Unsupported method: %s", input)
}

// CalculateOneRepMax estimates the one repetition max from a single set.
// Weight and reps must be finite and positive, otherwise the estimate is 0.
// Reps are floored to a whole number.
//
//	epley:   w * (1 + r/30)
//	brzycki: w * 36 / (37 - r), r clamped to [1, 36]
func CalculateOneRepMax(weight, reps float64, method Method) float64 {
	if !isFinite(weight) || weight <= 0 || !isFinite(reps) || reps <= 0 {
		return 0
	}
	wholeReps := math.Floor(reps)
	if wholeReps == 0 {
		return 0
	}

	if method == MethodBrzycki {
		bounded := math.Min(math.Max(wholeReps, 1), brzyckiMaxReps)
		return weight * (brzyckiMaxReps / (brzyckiMaxReps + 1 - bounded))
	}
	return weight * (1 + wholeReps/30)
}

// RawOneRepMaxRow is a per-set row as the storage backend returns it. Numeric
// fields hold whatever the backend produced (number, numeric string, nil) and
// are read with ParseNumeric; PerformedOn is read with ParseTimestamp.
type RawOneRepMaxRow struct {
	ExerciseID    string  `json:"exercise_id"`
	ExerciseName  *string `json:"exercise_name"`
	PerformedOn   any     `json:"performed_on"`
	Estimated1RM  any     `json:"estimated_1rm"`
	Reps          any     `json:"reps"`
	Weight        any     `json:"weight"`
	Unit          *string `json:"unit"`
	SourceEntryID *string `json:"source_entry_id"`
}

type OneRepMaxPoint struct {
	ExerciseID     string    `json:"exerciseId"`
	ExerciseName   string    `json:"exerciseName"`
	PerformedOn    time.Time `json:"performedOn"`
	EstimatedOneRM float64   `json:"estimatedOneRm"`
	Reps           float64   `json:"reps"`
	Weight         float64   `json:"weight"`
	Unit           *string   `json:"unit"`
	SourceEntryID  *string   `json:"sourceEntryId"`
}

type Filters struct {
	ExerciseIDs []string `json:"exerciseIds"`
	DateFrom    *string  `json:"dateFrom"`
	DateTo      *string  `json:"dateTo"`
}

type OneRepMaxPayload struct {
	Series  []OneRepMaxPoint `json:"series"`
	Max     *OneRepMaxPoint  `json:"max"`
	Method  Method           `json:"method"`
	Filters Filters          `json:"filters"`
}

// MapOneRepMaxRows turns raw rows into points. Rows without an exercise id or a
// readable performed_on are dropped. A missing stored estimate is computed with
// the default method from weight and reps.
func MapOneRepMaxRows(rows []RawOneRepMaxRow) []OneRepMaxPoint {
	points := make([]OneRepMaxPoint, 0, len(rows))
	for _, row := range rows {
		if row.ExerciseID == "" {
			continue
		}
		performedOn, ok := ParseTimestamp(row.PerformedOn)
		if !ok {
			continue
		}

		weight, _ := ParseNumeric(row.Weight)
		reps, _ := ParseNumeric(row.Reps)
		estimated, ok := ParseNumeric(row.Estimated1RM)
		if !ok {
			estimated = CalculateOneRepMax(weight, reps, DefaultMethod)
		}

		exerciseName := UnknownExerciseName
		if row.ExerciseName != nil {
			exerciseName = *row.ExerciseName
		}

		points = append(points, OneRepMaxPoint{
			ExerciseID:     row.ExerciseID,
			ExerciseName:   exerciseName,
			PerformedOn:    performedOn.UTC(),
			EstimatedOneRM: estimated,
			Reps:           reps,
			Weight:         weight,
			Unit:           row.Unit,
			SourceEntryID:  row.SourceEntryID,
		})
	}
	return points
}

// SelectMaxPoint returns the point with the highest estimate. On an exact tie
// the later performance wins; otherwise the first seen point is kept.
// Returns nil for an empty series.
func SelectMaxPoint(points []OneRepMaxPoint) *OneRepMaxPoint {
	if len(points) == 0 {
		return nil
	}

	best := points[0]
	for _, current := range points[1:] {
		switch {
		case current.EstimatedOneRM > best.EstimatedOneRM:
			best = current
		case current.EstimatedOneRM == best.EstimatedOneRM && current.PerformedOn.After(best.PerformedOn):
			best = current
		}
	}
	return &best
}

func BuildOneRepMaxPayload(rows []RawOneRepMaxRow, method Method, filters Filters) OneRepMaxPayload {
	series := MapOneRepMaxRows(rows)
	if filters.ExerciseIDs == nil {
		filters.ExerciseIDs = []string{}
	}
	return OneRepMaxPayload{
		Series:  series,
		Max:     SelectMaxPoint(series),
		Method:  method,
		Filters: filters,
	}
}
