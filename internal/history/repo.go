package history

import (
	"context"
	"fmt"

	"github.com/2beens/liftstats/internal/db"
	"github.com/2beens/liftstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const defaultListLimit = 500

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) ListEntries(ctx context.Context, params ListParams) (_ []Row, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.list_entries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner.id", params.OwnerID))

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				e.id, e.workout_id, e.exercise_id, e.sets, e.reps, e.weight, e.unit, e.created_at,
				w.id, w.scheduled_for,
				x.id, x.name, x.muscle_group
			FROM workout_entries e
			JOIN workouts w ON w.id = e.workout_id
			LEFT JOIN exercises x ON x.id = e.exercise_id
			WHERE w.user_id = $1 AND e.created_at >= $2
			ORDER BY e.created_at DESC
			LIMIT $3;`,
		params.OwnerID, params.Since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var (
			row                 Row
			sets, reps, weight  pgtype.Numeric
			createdAt, schedule pgtype.Timestamptz
		)
		if err := rows.Scan(
			&row.ID, &row.WorkoutID, &row.ExerciseID, &sets, &reps, &weight, &row.Unit, &createdAt,
			&row.JoinedWorkoutID, &schedule,
			&row.JoinedExerciseID, &row.ExerciseName, &row.MuscleGroup,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		row.Sets = db.NumericPtr(sets)
		row.Reps = db.NumericPtr(reps)
		row.Weight = db.NumericPtr(weight)
		row.CreatedAt = db.TimestamptzPtr(createdAt)
		row.ScheduledFor = db.TimestamptzPtr(schedule)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	span.SetAttributes(attribute.Int("rows.count", len(result)))
	return result, nil
}

func (r *Repo) VolumeView(ctx context.Context, ownerID string) (_ []VolumeViewRow, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.volume_view")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner.id", ownerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT period, total_volume FROM v_user_training_volume WHERE user_id = $1 LIMIT $2;`,
		ownerID, defaultListLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("query volume view: %w", err)
	}
	defer rows.Close()

	var result []VolumeViewRow
	for rows.Next() {
		var (
			row   VolumeViewRow
			total pgtype.Numeric
		)
		if err := rows.Scan(&row.Period, &total); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		row.TotalVolume = db.NumericPtr(total)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return result, nil
}
