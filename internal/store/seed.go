package store

import (
	"fmt"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

type demoExercise struct {
	name        string
	muscleGroup string
	minWeight   float64
	maxWeight   float64
}

var demoExercises = []demoExercise{
	{name: "Bench Press", muscleGroup: "chest", minWeight: 50, maxWeight: 110},
	{name: "Back Squat", muscleGroup: "legs", minWeight: 70, maxWeight: 160},
	{name: "Deadlift", muscleGroup: "back", minWeight: 90, maxWeight: 190},
	{name: "Overhead Press", muscleGroup: "shoulders", minWeight: 30, maxWeight: 70},
	{name: "Barbell Row", muscleGroup: "back", minWeight: 40, maxWeight: 100},
}

type SeedParams struct {
	OwnerID string
	Days    int
	Now     time.Time
	// Faker is seeded by the caller; a fixed seed gives reproducible data.
	Faker *gofakeit.Faker
}

// Seed fills the store with demo workouts for the owner, one every other day
// over the last Days days. Returns the number of added entries.
func (m *Memory) Seed(params SeedParams) (int, error) {
	faker := params.Faker
	if faker == nil {
		faker = gofakeit.New(0)
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	days := params.Days
	if days <= 0 {
		days = 30
	}

	exerciseIDs := make([]string, 0, len(demoExercises))
	for _, ex := range demoExercises {
		muscleGroup := ex.muscleGroup
		id := faker.UUID()
		m.AddExercise(Exercise{
			ID:          id,
			Name:        ex.name,
			MuscleGroup: &muscleGroup,
		})
		exerciseIDs = append(exerciseIDs, id)
	}

	unit := "metric"
	added := 0
	for day := days - 1; day >= 0; day -= 2 {
		scheduled := now.AddDate(0, 0, -day).Truncate(time.Hour)
		workoutID := faker.UUID()
		m.AddWorkout(Workout{
			ID:           workoutID,
			OwnerID:      params.OwnerID,
			ScheduledFor: &scheduled,
		})

		exercisesCount := faker.IntRange(2, 4)
		for position := 0; position < exercisesCount; position++ {
			i := faker.IntRange(0, len(demoExercises)-1)
			ex := demoExercises[i]
			exerciseID := exerciseIDs[i]
			sets := float64(faker.IntRange(3, 5))
			reps := float64(faker.IntRange(3, 12))
			weight := math.Round(faker.Float64Range(ex.minWeight, ex.maxWeight)/2.5) * 2.5

			if err := m.AddEntry(Entry{
				ID:         faker.UUID(),
				WorkoutID:  workoutID,
				ExerciseID: &exerciseID,
				Sets:       &sets,
				Reps:       &reps,
				Weight:     &weight,
				Unit:       &unit,
				Position:   position,
				CreatedAt:  scheduled.Add(time.Duration(position) * 10 * time.Minute),
			}); err != nil {
				return added, fmt.Errorf("seed entry: %w", err)
			}
			added++
		}
	}

	return added, nil
}
