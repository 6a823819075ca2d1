package analytics

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ParseNumeric reads a stored numeric value that may arrive as a number, a
// numeric string or a json.Number. It reports false for nil, blank, unparsable
// or non-finite input and never panics.
func ParseNumeric(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case *float64:
		if v == nil {
			return 0, false
		}
		f = *v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if !isFinite(f) {
		return 0, false
	}
	return f, true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	// postgres text output for timestamptz
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	dateKeyLayout,
}

// ParseTimestamp reads a stored timestamp given as time.Time or as a string in
// one of the common ISO 8601 shapes. Strings without a zone are read as UTC.
func ParseTimestamp(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		trimmed := strings.TrimSpace(v)
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
