package db

import (
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// NumericPtr converts a nullable NUMERIC into a float pointer; NULL and NaN become nil.
func NumericPtr(n pgtype.Numeric) *float64 {
	if !n.Valid {
		return nil
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid || math.IsNaN(f.Float64) {
		return nil
	}
	return &f.Float64
}

func TimestamptzPtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid || ts.InfinityModifier != pgtype.Finite {
		return nil
	}
	return &ts.Time
}
