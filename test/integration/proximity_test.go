package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgrepo "github.com/opinionmap/api/internal/adapters/repository/postgres"
)

func seedScenario(t *testing.T, app *TestApp) {
	questionID, _ := seedQuestion(t, app.DB, "Favorite color?")
	seedAnswer(t, app.DB, questionID, "Blue", 40.0, -73.0)
	seedAnswer(t, app.DB, questionID, "Red", 40.01, -73.01)
	seedAnswer(t, app.DB, questionID, "Blue", 51.5, -0.1) // London, far away
}

func TestProximityAnswersExcludesDistantRows(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)
	seedScenario(t, app)

	resp, err := app.Client.Get(app.Server.URL + "/api/answers/proximity?latitude=40.0&longitude=-73.0&radius_km=50")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var answers []domain.ProximityAnswer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answers))
	require.Len(t, answers, 2)
	for _, a := range answers {
		assert.Equal(t, "Favorite color?", a.QuestionText)
		assert.NotEqual(t, 51.5, a.Latitude)
	}
}

func TestProximityAnswersParamValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	cases := []string{
		"/api/answers/proximity",
		"/api/answers/proximity?latitude=40.0&longitude=-73.0",
		"/api/answers/proximity?latitude=forty&longitude=-73.0&radius_km=50",
		"/api/answers/proximity?latitude=40.0&longitude=-73.0&radius_km=-50",
	}
	for _, path := range cases {
		resp, err := app.Client.Get(app.Server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

// The in-memory scan and the SQL pushdown must select the same rows for
// the same inputs, up to float rounding exactly at the radius boundary.
func TestFilterStrategyEquivalence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	questionID, _ := seedQuestion(t, app.DB, "Favorite color?")
	points := []struct {
		text     string
		lat, lon float64
	}{
		{"Blue", 40.0, -73.0},
		{"Red", 40.01, -73.01},
		{"Blue", 40.2, -73.2},
		{"Green", 41.0, -74.0},
		{"Blue", 51.5, -0.1},
		{"Red", -33.87, 151.21},
		{"Blue", 40.0, 107.0}, // near-antipodal longitude
	}
	for _, p := range points {
		seedAnswer(t, app.DB, questionID, p.text, p.lat, p.lon)
	}

	answerRepo := pgrepo.NewAnswerRepository(app.DB)
	memory := services.NewMemoryProximityFilter(answerRepo)
	pushdown := services.NewPushdownProximityFilter(answerRepo)

	center := domain.Location{Latitude: 40.0, Longitude: -73.0}
	ctx := context.Background()

	for _, radius := range []float64{1, 5, 50, 200, 1000, 20000} {
		fromMemory, err := memory.WithinRadius(ctx, center, radius)
		require.NoError(t, err)
		fromPushdown, err := pushdown.WithinRadius(ctx, center, radius)
		require.NoError(t, err)

		assert.Equal(t, collectIDs(fromMemory), collectIDs(fromPushdown), "radius %v km", radius)
	}
}

func TestProximityResultsAggregation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	questionID, _ := seedQuestion(t, app.DB, "Favorite color?")
	seedAnswer(t, app.DB, questionID, "Blue", 40.0, -73.0)
	seedAnswer(t, app.DB, questionID, "Blue", 40.01, -73.01)
	seedAnswer(t, app.DB, questionID, "Red", 51.5, -0.1) // excluded by radius

	resp, err := app.Client.Get(app.Server.URL + "/api/results/proximity?latitude=40.0&longitude=-73.0&radius_km=50")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []domain.QuestionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "Favorite color?", r.QuestionText)
	assert.Equal(t, int64(2), r.TotalVotes)
	require.Len(t, r.Options, 1)
	assert.Equal(t, domain.OptionTally{Text: "Blue", VoteCount: 2, Percentage: 100.0}, r.Options[0])
}

func TestProximityResultsEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/api/results/proximity?latitude=0&longitude=0&radius_km=10")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []domain.QuestionResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	assert.Empty(t, results)
}

func collectIDs(answers []domain.ProximityAnswer) []int64 {
	ids := make([]int64, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.ID)
	}
	return ids
}
