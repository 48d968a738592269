package ports

import (
	"context"

	"github.com/opinionmap/api/internal/core/domain"
)

type ResultsService interface {
	ProximityResults(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.QuestionResult, error)
}

// ResultCache is an advisory cache for aggregated proximity results.
// Failures are logged and ignored; a miss is (nil, nil).
type ResultCache interface {
	Get(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.QuestionResult, error)
	Set(ctx context.Context, center domain.Location, radiusKM float64, results []domain.QuestionResult) error
}
