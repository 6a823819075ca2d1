package onerepmax

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/db"
	"github.com/2beens/liftstats/internal/telemetry/tracing"
	"github.com/2beens/liftstats/pkg"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidParams = errors.New("invalid one rep max parameters")
)

type Params struct {
	OwnerID     string
	ExerciseIDs []string
	From        *time.Time
	To          *time.Time
	Method      analytics.Method
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListSets calls get_one_rep_max, which returns one row per set, ordered by performance date.
func (r *Repo) ListSets(ctx context.Context, params Params) (_ []analytics.RawOneRepMaxRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.onerepmax.list_sets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("owner.id", params.OwnerID),
		attribute.String("method", string(params.Method)),
		attribute.Int("exercise_ids.count", len(params.ExerciseIDs)),
	)

	// an empty id list means all exercises
	var exerciseIDs []string
	if len(params.ExerciseIDs) > 0 {
		exerciseIDs = params.ExerciseIDs
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				exercise_id::text, exercise_name, performed_on, estimated_1rm,
				reps, weight, unit, source_entry_id::text
			FROM get_one_rep_max($1::text::uuid, $2::text[]::uuid[], $3::date, $4::date, $5::text);`,
		params.OwnerID, exerciseIDs, params.From, params.To, string(params.Method),
	)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var result []analytics.RawOneRepMaxRow
	for rows.Next() {
		var (
			row                     analytics.RawOneRepMaxRow
			performedOn             pgtype.Timestamptz
			estimated, reps, weight pgtype.Numeric
		)
		if err := rows.Scan(
			&row.ExerciseID, &row.ExerciseName, &performedOn, &estimated,
			&reps, &weight, &row.Unit, &row.SourceEntryID,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if ts := db.TimestamptzPtr(performedOn); ts != nil {
			row.PerformedOn = *ts
		}
		row.Estimated1RM = db.NumericPtr(estimated)
		row.Reps = db.NumericPtr(reps)
		row.Weight = db.NumericPtr(weight)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}

	span.SetAttributes(attribute.Int("rows.count", len(result)))
	return result, nil
}

func mapPgError(err error) error {
	switch {
	case pkg.IsInsufficientPrivilegeError(err):
		return fmt.Errorf("%w: %w", ErrForbidden, err)
	case pkg.IsInvalidParameterValueError(err):
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	default:
		return fmt.Errorf("get one rep max: %w", err)
	}
}
