package ports

import (
	"context"

	"github.com/opinionmap/api/internal/core/domain"
)

type AnswerRepository interface {
	Insert(ctx context.Context, answer *domain.Answer) (*domain.Answer, error)
	// ListAll returns every stored answer joined with its question text.
	ListAll(ctx context.Context) ([]domain.ProximityAnswer, error)
	// FindWithinRadius evaluates the haversine predicate store-side.
	FindWithinRadius(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.ProximityAnswer, error)
}

// SubmitAnswerInput carries either QuestionID with free-form Text, or
// OptionID alone (the answer text is copied from the option).
type SubmitAnswerInput struct {
	QuestionID int64
	OptionID   int64
	Text       string
	Latitude   float64
	Longitude  float64
}

type AnswerService interface {
	Submit(ctx context.Context, input SubmitAnswerInput) (*domain.Answer, error)
	// SubmitBatch persists submissions in order and aborts on the first
	// failure, returning the answers created before it.
	SubmitBatch(ctx context.Context, inputs []SubmitAnswerInput) ([]*domain.Answer, error)
}

// ProximityFilter selects the stored answers within radiusKM of center.
// The two implementations (in-memory scan and store pushdown) must agree
// on the result set up to float rounding at the radius boundary.
type ProximityFilter interface {
	WithinRadius(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.ProximityAnswer, error)
}
