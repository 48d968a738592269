package services

import (
	"context"
	"fmt"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

type questionService struct {
	repo ports.QuestionRepository
}

func NewQuestionService(repo ports.QuestionRepository) ports.QuestionService {
	return &questionService{
		repo: repo,
	}
}

func (s *questionService) ListQuestions(ctx context.Context) ([]*domain.Question, error) {
	questions, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch questions: %w", err)
	}
	return questions, nil
}
