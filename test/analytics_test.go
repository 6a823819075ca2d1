//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seededOwner struct {
	ownerID string
	benchID string
	squatID string
}

// seedOwner adds two exercises and a workout scheduled yesterday with
// bench 3x5x100 and squat 5x5x120, for a fresh owner.
func (s *IntegrationTestSuite) seedOwner() seededOwner {
	t := s.T()
	seeded := seededOwner{
		ownerID: uuid.NewString(),
		benchID: uuid.NewString(),
		squatID: uuid.NewString(),
	}
	workoutID := uuid.NewString()
	scheduled := time.Now().UTC().Add(-24 * time.Hour)

	_, err := s.DB.Exec(
		`INSERT INTO exercises (id, user_id, name, muscle_group) VALUES ($1, $3, 'Bench Press', 'chest'), ($2, $3, 'Back Squat', 'legs')`,
		seeded.benchID, seeded.squatID, seeded.ownerID,
	)
	require.NoError(t, err)

	_, err = s.DB.Exec(
		`INSERT INTO workouts (id, user_id, scheduled_for) VALUES ($1, $2, $3)`,
		workoutID, seeded.ownerID, scheduled,
	)
	require.NoError(t, err)

	_, err = s.DB.Exec(
		`INSERT INTO workout_entries (workout_id, exercise_id, position, sets, reps, weight, unit, created_at)
		VALUES ($1, $2, 0, 3, 5, 100, 'metric', $4), ($1, $3, 1, 5, 5, 120, 'metric', $4)`,
		workoutID, seeded.benchID, seeded.squatID, scheduled,
	)
	require.NoError(t, err)

	return seeded
}

func (s *IntegrationTestSuite) get(ownerID, path string, headers map[string]string) (*http.Response, []byte) {
	t := s.T()
	req, err := http.NewRequest(http.MethodGet, serverEndpoint+path, nil)
	require.NoError(t, err)
	if ownerID != "" {
		req.Header.Set("Authorization", "Bearer "+testAPISecret)
		req.Header.Set("X-Owner-ID", ownerID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func (s *IntegrationTestSuite) TestHealth() {
	resp, body := s.get("", "/health", nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.JSONEq(s.T(), `{"status":"ok","storage":"postgres","version":"test-version-info"}`, string(body))
}

func (s *IntegrationTestSuite) TestUnauthorized() {
	for _, path := range []string{"/history", "/analytics/volume", "/analytics/one-rep-max"} {
		resp, body := s.get("", path, nil)
		assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode, path)
		assert.JSONEq(s.T(), `{"error":"Unauthorized"}`, string(body), path)
	}
}

func (s *IntegrationTestSuite) TestHistory() {
	seeded := s.seedOwner()

	resp, body := s.get(seeded.ownerID, "/history?range=7d", nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var history struct {
		Data []struct {
			ExerciseName string  `json:"exerciseName"`
			TotalVolume  float64 `json:"totalVolume"`
		} `json:"data"`
		Trend []struct {
			Date        string  `json:"date"`
			TotalVolume float64 `json:"totalVolume"`
		} `json:"trend"`
		Range string `json:"range"`
	}
	require.NoError(s.T(), json.Unmarshal(body, &history))

	require.Len(s.T(), history.Data, 2)
	names := []string{history.Data[0].ExerciseName, history.Data[1].ExerciseName}
	assert.ElementsMatch(s.T(), []string{"Bench Press", "Back Squat"}, names)
	assert.Equal(s.T(), "7d", history.Range)
	require.Len(s.T(), history.Trend, 7)

	var trendTotal float64
	for _, point := range history.Trend {
		trendTotal += point.TotalVolume
	}
	assert.Equal(s.T(), 4500.0, trendTotal)

	// other owners see nothing
	resp, body = s.get(uuid.NewString(), "/history", nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	require.NoError(s.T(), json.Unmarshal(body, &history))
	assert.Empty(s.T(), history.Data)
}

func (s *IntegrationTestSuite) TestVolume() {
	seeded := s.seedOwner()

	resp, body := s.get(seeded.ownerID, "/analytics/volume", nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var volume struct {
		Data []struct {
			Period      string  `json:"period"`
			TotalVolume float64 `json:"totalVolume"`
		} `json:"data"`
		LastSyncedAt time.Time `json:"lastSyncedAt"`
	}
	require.NoError(s.T(), json.Unmarshal(body, &volume))
	require.Len(s.T(), volume.Data, 2)
	assert.Equal(s.T(), "7d", volume.Data[0].Period)
	assert.Equal(s.T(), 4500.0, volume.Data[0].TotalVolume)
	assert.Equal(s.T(), "30d", volume.Data[1].Period)
	assert.Equal(s.T(), 4500.0, volume.Data[1].TotalVolume)
	assert.False(s.T(), volume.LastSyncedAt.IsZero())
}

func (s *IntegrationTestSuite) TestOneRepMax() {
	seeded := s.seedOwner()

	path := fmt.Sprintf("/analytics/one-rep-max?method=epley&exercise_id=%s", seeded.benchID)
	resp, body := s.get(seeded.ownerID, path, nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	etag := resp.Header.Get("ETag")
	require.NotEmpty(s.T(), etag)

	var oneRepMax struct {
		Data struct {
			Series []struct {
				ExerciseID     string  `json:"exerciseId"`
				ExerciseName   string  `json:"exerciseName"`
				EstimatedOneRM float64 `json:"estimatedOneRm"`
			} `json:"series"`
			Max *struct {
				EstimatedOneRM float64 `json:"estimatedOneRm"`
			} `json:"max"`
			Method  string `json:"method"`
			Filters struct {
				ExerciseIDs []string `json:"exerciseIds"`
			} `json:"filters"`
		} `json:"data"`
	}
	require.NoError(s.T(), json.Unmarshal(body, &oneRepMax))
	require.Len(s.T(), oneRepMax.Data.Series, 1)
	assert.Equal(s.T(), seeded.benchID, oneRepMax.Data.Series[0].ExerciseID)
	assert.Equal(s.T(), "Bench Press", oneRepMax.Data.Series[0].ExerciseName)
	assert.InDelta(s.T(), 116.67, oneRepMax.Data.Series[0].EstimatedOneRM, 0.01)
	require.NotNil(s.T(), oneRepMax.Data.Max)
	assert.Equal(s.T(), "epley", oneRepMax.Data.Method)
	assert.Equal(s.T(), []string{seeded.benchID}, oneRepMax.Data.Filters.ExerciseIDs)

	// second call is served from redis and matches the same etag
	resp, body = s.get(seeded.ownerID, path, map[string]string{"If-None-Match": etag})
	assert.Equal(s.T(), http.StatusNotModified, resp.StatusCode)
	assert.Empty(s.T(), body)
}

func (s *IntegrationTestSuite) TestOneRepMax_Brzycki() {
	seeded := s.seedOwner()

	path := fmt.Sprintf("/analytics/one-rep-max?method=brzycki&exercise_id=%s", seeded.squatID)
	resp, body := s.get(seeded.ownerID, path, nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var oneRepMax struct {
		Data struct {
			Max *struct {
				EstimatedOneRM float64 `json:"estimatedOneRm"`
			} `json:"max"`
		} `json:"data"`
	}
	require.NoError(s.T(), json.Unmarshal(body, &oneRepMax))
	require.NotNil(s.T(), oneRepMax.Data.Max)
	// 120 * 36 / (37 - 5)
	assert.InDelta(s.T(), 135.0, oneRepMax.Data.Max.EstimatedOneRM, 0.01)
}

func (s *IntegrationTestSuite) TestOneRepMax_InvalidQuery() {
	seeded := s.seedOwner()

	resp, _ := s.get(seeded.ownerID, "/analytics/one-rep-max?method=lombardi", nil)
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.get(seeded.ownerID, "/analytics/one-rep-max?exercise_id=not-a-uuid", nil)
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.get(seeded.ownerID, "/analytics/one-rep-max?date_from=2024-02-30", nil)
	assert.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}
