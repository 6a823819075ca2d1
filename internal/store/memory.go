package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/history"
	"github.com/2beens/liftstats/internal/onerepmax"
)

var (
	ErrWorkoutNotFound  = errors.New("workout not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

type Exercise struct {
	ID          string
	Name        string
	MuscleGroup *string
}

type Workout struct {
	ID           string
	OwnerID      string
	ScheduledFor *time.Time
}

type Entry struct {
	ID         string
	WorkoutID  string
	ExerciseID *string
	Sets       *float64
	Reps       *float64
	Weight     *float64
	Unit       *string
	Position   int
	CreatedAt  time.Time
}

// Memory keeps exercises, workouts and entries in process memory. It serves the
// same reads as the postgres repos and backs the development setup and tests.
type Memory struct {
	mu        sync.RWMutex
	exercises map[string]Exercise
	workouts  map[string]Workout
	entries   []Entry
}

func NewMemory() *Memory {
	return &Memory{
		exercises: make(map[string]Exercise),
		workouts:  make(map[string]Workout),
	}
}

func (m *Memory) AddExercise(exercise Exercise) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exercises[exercise.ID] = exercise
}

func (m *Memory) AddWorkout(workout Workout) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workouts[workout.ID] = workout
}

func (m *Memory) AddEntry(entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.workouts[entry.WorkoutID]; !ok {
		return fmt.Errorf("entry %s: %w", entry.ID, ErrWorkoutNotFound)
	}
	if entry.ExerciseID != nil {
		if _, ok := m.exercises[*entry.ExerciseID]; !ok {
			return fmt.Errorf("entry %s: %w", entry.ID, ErrExerciseNotFound)
		}
	}

	m.entries = append(m.entries, entry)
	return nil
}

func (m *Memory) EntriesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) ListEntries(_ context.Context, params history.ListParams) ([]history.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var rows []history.Row
	for _, entry := range m.entries {
		workout, ok := m.workouts[entry.WorkoutID]
		if !ok || workout.OwnerID != params.OwnerID {
			continue
		}
		if entry.CreatedAt.Before(params.Since) {
			continue
		}

		createdAt := entry.CreatedAt
		workoutID := workout.ID
		row := history.Row{
			ID:              entry.ID,
			WorkoutID:       &workoutID,
			ExerciseID:      entry.ExerciseID,
			Sets:            entry.Sets,
			Reps:            entry.Reps,
			Weight:          entry.Weight,
			Unit:            entry.Unit,
			CreatedAt:       &createdAt,
			ScheduledFor:    workout.ScheduledFor,
			JoinedWorkoutID: &workoutID,
		}
		if entry.ExerciseID != nil {
			if exercise, ok := m.exercises[*entry.ExerciseID]; ok {
				exerciseID, name := exercise.ID, exercise.Name
				row.JoinedExerciseID = &exerciseID
				row.ExerciseName = &name
				row.MuscleGroup = exercise.MuscleGroup
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(*rows[j].CreatedAt)
	})
	if params.Limit > 0 && len(rows) > params.Limit {
		rows = rows[:params.Limit]
	}

	return rows, nil
}

// VolumeView has no precomputed view in memory; callers fall back to entries.
func (m *Memory) VolumeView(_ context.Context, _ string) ([]history.VolumeViewRow, error) {
	return nil, nil
}

func (m *Memory) ListSets(_ context.Context, params onerepmax.Params) ([]analytics.RawOneRepMaxRow, error) {
	switch params.Method {
	case analytics.MethodEpley, analytics.MethodBrzycki:
	default:
		return nil, fmt.Errorf("%w: unsupported method: %s", onerepmax.ErrInvalidParams, params.Method)
	}
	if len(params.ExerciseIDs) > analytics.MaxExerciseIDs {
		return nil, fmt.Errorf("%w: too many exercise ids", onerepmax.ErrInvalidParams)
	}

	wanted := make(map[string]bool, len(params.ExerciseIDs))
	for _, id := range params.ExerciseIDs {
		wanted[id] = true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	type set struct {
		row      analytics.RawOneRepMaxRow
		at       time.Time
		position int
	}

	var sets []set
	for _, entry := range m.entries {
		workout, ok := m.workouts[entry.WorkoutID]
		if !ok || workout.OwnerID != params.OwnerID || entry.ExerciseID == nil {
			continue
		}
		if len(wanted) > 0 && !wanted[*entry.ExerciseID] {
			continue
		}

		performedOn := entry.CreatedAt
		if workout.ScheduledFor != nil {
			performedOn = *workout.ScheduledFor
		}
		if params.From != nil && performedOn.Before(*params.From) {
			continue
		}
		if params.To != nil && !performedOn.Before(params.To.AddDate(0, 0, 1)) {
			continue
		}

		entryID := entry.ID
		row := analytics.RawOneRepMaxRow{
			ExerciseID:    *entry.ExerciseID,
			PerformedOn:   performedOn,
			Reps:          entry.Reps,
			Weight:        entry.Weight,
			Unit:          entry.Unit,
			SourceEntryID: &entryID,
		}
		if exercise, ok := m.exercises[*entry.ExerciseID]; ok {
			name := exercise.Name
			row.ExerciseName = &name
		}
		if entry.Reps != nil && entry.Weight != nil && *entry.Reps > 0 && *entry.Weight > 0 {
			estimated := analytics.CalculateOneRepMax(*entry.Weight, *entry.Reps, params.Method)
			row.Estimated1RM = &estimated
		}

		sets = append(sets, set{row: row, at: performedOn, position: entry.Position})
	}

	sort.SliceStable(sets, func(i, j int) bool {
		if !sets[i].at.Equal(sets[j].at) {
			return sets[i].at.Before(sets[j].at)
		}
		return sets[i].position < sets[j].position
	})

	rows := make([]analytics.RawOneRepMaxRow, 0, len(sets))
	for _, s := range sets {
		rows = append(rows, s.row)
	}
	return rows, nil
}
