package services

import (
	"context"
	"errors"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/geo"
)

func distanceKM(center domain.Location, a domain.ProximityAnswer) float64 {
	return geo.Distance(center, domain.Location{Latitude: a.Latitude, Longitude: a.Longitude})
}

// fakeQuestionRepo serves questions and options from memory.
type fakeQuestionRepo struct {
	questions map[int64]*domain.Question
	options   map[int64]*domain.Option
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questions: make(map[int64]*domain.Question),
		options:   make(map[int64]*domain.Option),
	}
}

func (r *fakeQuestionRepo) GetAll(ctx context.Context) ([]*domain.Question, error) {
	var questions []*domain.Question
	for _, q := range r.questions {
		questions = append(questions, q)
	}
	return questions, nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (r *fakeQuestionRepo) GetOption(ctx context.Context, optionID int64) (*domain.Option, error) {
	opt, ok := r.options[optionID]
	if !ok {
		return nil, domain.ErrOptionNotFound
	}
	return opt, nil
}

// fakeAnswerRepo stores answers in memory and joins question text from an
// attached fakeQuestionRepo. FindWithinRadius intentionally reuses the
// same distance math as the in-memory filter so strategy tests compare
// selection logic, not trigonometry.
type fakeAnswerRepo struct {
	questions *fakeQuestionRepo
	answers   []domain.ProximityAnswer
	nextID    int64
	insertErr error
	listErr   error
}

func newFakeAnswerRepo(questions *fakeQuestionRepo) *fakeAnswerRepo {
	return &fakeAnswerRepo{questions: questions, nextID: 1}
}

func (r *fakeAnswerRepo) Insert(ctx context.Context, answer *domain.Answer) (*domain.Answer, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}

	created := *answer
	created.ID = r.nextID
	r.nextID++

	questionText := ""
	if q, ok := r.questions.questions[created.QuestionID]; ok {
		questionText = q.Text
	}
	r.answers = append(r.answers, domain.ProximityAnswer{Answer: created, QuestionText: questionText})

	return &created, nil
}

func (r *fakeAnswerRepo) ListAll(ctx context.Context) ([]domain.ProximityAnswer, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.ProximityAnswer(nil), r.answers...), nil
}

func (r *fakeAnswerRepo) FindWithinRadius(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.ProximityAnswer, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var within []domain.ProximityAnswer
	for _, a := range r.answers {
		if distanceKM(center, a) <= radiusKM {
			within = append(within, a)
		}
	}
	return within, nil
}

// fakeResultsService returns canned results or a canned error.
type fakeResultsService struct {
	results []domain.QuestionResult
	err     error
	calls   int
}

func (s *fakeResultsService) ProximityResults(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.QuestionResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

var errStore = errors.New("store unavailable")
