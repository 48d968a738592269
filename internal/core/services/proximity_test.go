package services

import (
	"context"
	"math"
	"testing"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProximityAnswers(repo *fakeAnswerRepo) {
	repo.answers = []domain.ProximityAnswer{
		{Answer: domain.Answer{ID: 1, QuestionID: 1, Text: "Blue", Latitude: 40.0, Longitude: -73.0}, QuestionText: "Favorite color?"},
		{Answer: domain.Answer{ID: 2, QuestionID: 1, Text: "Red", Latitude: 40.01, Longitude: -73.01}, QuestionText: "Favorite color?"},
		{Answer: domain.Answer{ID: 3, QuestionID: 1, Text: "Blue", Latitude: 51.5, Longitude: -0.1}, QuestionText: "Favorite color?"},
	}
	repo.nextID = 4
}

func TestMemoryFilterSelectsWithinRadius(t *testing.T) {
	repo := newFakeAnswerRepo(newFakeQuestionRepo())
	seedProximityAnswers(repo)
	filter := NewMemoryProximityFilter(repo)

	center := domain.Location{Latitude: 40.0, Longitude: -73.0}
	within, err := filter.WithinRadius(context.Background(), center, 50)

	require.NoError(t, err)
	require.Len(t, within, 2)
	assert.Equal(t, int64(1), within[0].ID)
	assert.Equal(t, int64(2), within[1].ID)
}

func TestFilterStrategiesAgree(t *testing.T) {
	repo := newFakeAnswerRepo(newFakeQuestionRepo())
	seedProximityAnswers(repo)

	memory := NewMemoryProximityFilter(repo)
	pushdown := NewPushdownProximityFilter(repo)
	center := domain.Location{Latitude: 40.0, Longitude: -73.0}

	for _, radius := range []float64{1, 5, 50, 1000, 10000} {
		fromMemory, err := memory.WithinRadius(context.Background(), center, radius)
		require.NoError(t, err)
		fromPushdown, err := pushdown.WithinRadius(context.Background(), center, radius)
		require.NoError(t, err)

		assert.Equal(t, answerIDs(fromMemory), answerIDs(fromPushdown), "radius %v km", radius)
	}
}

func TestProximityFilterRejectsInvalidInput(t *testing.T) {
	repo := newFakeAnswerRepo(newFakeQuestionRepo())

	for _, filter := range []ports.ProximityFilter{
		NewMemoryProximityFilter(repo),
		NewPushdownProximityFilter(repo),
	} {
		center := domain.Location{Latitude: 40.0, Longitude: -73.0}

		_, err := filter.WithinRadius(context.Background(), center, math.NaN())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = filter.WithinRadius(context.Background(), center, -5)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = filter.WithinRadius(context.Background(), center, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = filter.WithinRadius(context.Background(), domain.Location{Latitude: math.Inf(1)}, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestProximityFilterPropagatesStoreError(t *testing.T) {
	repo := newFakeAnswerRepo(newFakeQuestionRepo())
	repo.listErr = errStore

	filter := NewMemoryProximityFilter(repo)
	center := domain.Location{Latitude: 40.0, Longitude: -73.0}

	_, err := filter.WithinRadius(context.Background(), center, 10)
	assert.ErrorIs(t, err, errStore)
}

func answerIDs(answers []domain.ProximityAnswer) []int64 {
	ids := make([]int64, 0, len(answers))
	for _, a := range answers {
		ids = append(ids, a.ID)
	}
	return ids
}
