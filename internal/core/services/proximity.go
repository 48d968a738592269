package services

import (
	"context"
	"fmt"
	"math"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/geo"
	"github.com/opinionmap/api/internal/core/ports"
)

// memoryProximityFilter fetches every stored answer and filters client-side
// with the haversine distance. O(n) over the whole answer table; fine for
// small corpora, documented limitation otherwise.
type memoryProximityFilter struct {
	repo ports.AnswerRepository
}

func NewMemoryProximityFilter(repo ports.AnswerRepository) ports.ProximityFilter {
	return &memoryProximityFilter{repo: repo}
}

func (f *memoryProximityFilter) WithinRadius(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.ProximityAnswer, error) {
	if err := validateProximityQuery(center, radiusKM); err != nil {
		return nil, err
	}

	answers, err := f.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch answers: %w", err)
	}

	return geo.FilterWithinRadius(answers, center, radiusKM), nil
}

// pushdownProximityFilter delegates the same predicate to the store, which
// evaluates the haversine formula per row.
type pushdownProximityFilter struct {
	repo ports.AnswerRepository
}

func NewPushdownProximityFilter(repo ports.AnswerRepository) ports.ProximityFilter {
	return &pushdownProximityFilter{repo: repo}
}

func (f *pushdownProximityFilter) WithinRadius(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.ProximityAnswer, error) {
	if err := validateProximityQuery(center, radiusKM); err != nil {
		return nil, err
	}

	answers, err := f.repo.FindWithinRadius(ctx, center, radiusKM)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch answers within radius: %w", err)
	}

	return answers, nil
}

func validateProximityQuery(center domain.Location, radiusKM float64) error {
	if err := validateCoordinates(center.Latitude, center.Longitude); err != nil {
		return err
	}
	if math.IsNaN(radiusKM) || math.IsInf(radiusKM, 0) {
		return fmt.Errorf("%w: radius_km must be a finite number", domain.ErrInvalidInput)
	}
	if radiusKM <= 0 {
		return fmt.Errorf("%w: radius_km must be positive", domain.ErrInvalidInput)
	}
	return nil
}
