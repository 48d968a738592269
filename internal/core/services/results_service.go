package services

import (
	"context"
	"log/slog"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

type resultsService struct {
	filter ports.ProximityFilter
	cache  ports.ResultCache
}

func NewResultsService(filter ports.ProximityFilter, cache ports.ResultCache) ports.ResultsService {
	return &resultsService{
		filter: filter,
		cache:  cache,
	}
}

// ProximityResults fetches the answers within radiusKM of center and
// aggregates them into per-question tallies. The cache is advisory: a
// cache error is logged and the query proceeds against the store.
func (s *resultsService) ProximityResults(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.QuestionResult, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, center, radiusKM)
		if err != nil {
			slog.Warn("result cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	answers, err := s.filter.WithinRadius(ctx, center, radiusKM)
	if err != nil {
		return nil, err
	}

	results := AggregateAnswers(answers)

	if s.cache != nil {
		if err := s.cache.Set(ctx, center, radiusKM, results); err != nil {
			slog.Warn("result cache write failed", "error", err)
		}
	}

	return results, nil
}
