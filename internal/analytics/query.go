package analytics

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxExerciseIDs = 25

var dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError is a caller error: the request itself is malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type OneRepMaxQuery struct {
	ExerciseIDs []string
	DateFrom    *string
	DateTo      *string
	Method      Method
}

func (q OneRepMaxQuery) Filters() Filters {
	ids := q.ExerciseIDs
	if ids == nil {
		ids = []string{}
	}
	return Filters{
		ExerciseIDs: ids,
		DateFrom:    q.DateFrom,
		DateTo:      q.DateTo,
	}
}

// Bounds returns the inclusive day bounds of the query, parsed as UTC dates.
func (q OneRepMaxQuery) Bounds() (from, to *time.Time) {
	if q.DateFrom != nil {
		if t, err := time.Parse(dateKeyLayout, *q.DateFrom); err == nil {
			from = &t
		}
	}
	if q.DateTo != nil {
		if t, err := time.Parse(dateKeyLayout, *q.DateTo); err == nil {
			to = &t
		}
	}
	return from, to
}

// ParseOneRepMaxQuery reads and validates exercise_id / exercise_id[], method,
// date_from (dateFrom) and date_to (dateTo) query params.
func ParseOneRepMaxQuery(values url.Values) (OneRepMaxQuery, error) {
	rawIDs := append(append([]string{}, values["exercise_id"]...), values["exercise_id[]"]...)
	exerciseIDs := UniqueExerciseIDs(rawIDs)
	for _, id := range exerciseIDs {
		if !IsValidExerciseID(id) {
			return OneRepMaxQuery{}, newValidationError("Invalid exercise_id: %s", id)
		}
	}

	method, err := ParseMethod(values.Get("method"))
	if err != nil {
		return OneRepMaxQuery{}, err
	}

	dateFrom := firstNonEmpty(values, "date_from", "dateFrom")
	dateTo := firstNonEmpty(values, "date_to", "dateTo")
	if err := ValidateDateRange(dateFrom, dateTo); err != nil {
		return OneRepMaxQuery{}, err
	}

	return OneRepMaxQuery{
		ExerciseIDs: exerciseIDs,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Method:      method,
	}, nil
}

// UniqueExerciseIDs drops duplicates (first occurrence wins) and keeps at most MaxExerciseIDs.
func UniqueExerciseIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
		if len(unique) == MaxExerciseIDs {
			break
		}
	}
	return unique
}

// IsValidExerciseID accepts canonical 8-4-4-4-12 hex UUIDs of version 1 to 5 with the RFC 4122 variant.
func IsValidExerciseID(id string) bool {
	if len(id) != 36 {
		return false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	version := parsed.Version()
	return version >= 1 && version <= 5 && parsed.Variant() == uuid.RFC4122
}

func ValidateDateRange(dateFrom, dateTo *string) error {
	var from, to time.Time
	if dateFrom != nil {
		t, ok := parseDateOnly(*dateFrom)
		if !ok {
			return newValidationError("Invalid date_from: %s", *dateFrom)
		}
		from = t
	}
	if dateTo != nil {
		t, ok := parseDateOnly(*dateTo)
		if !ok {
			return newValidationError("Invalid date_to: %s", *dateTo)
		}
		to = t
	}
	if dateFrom != nil && dateTo != nil {
		endOfTo := to.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		if from.After(endOfTo) {
			return newValidationError("date_from must be earlier than date_to")
		}
	}
	return nil
}

func parseDateOnly(value string) (time.Time, bool) {
	if !dateOnlyPattern.MatchString(value) {
		return time.Time{}, false
	}
	t, err := time.Parse(dateKeyLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// firstNonEmpty treats a blank value as absent and moves on to the next key.
func firstNonEmpty(values url.Values, keys ...string) *string {
	for _, key := range keys {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			return &v
		}
	}
	return nil
}
