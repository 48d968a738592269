package ports

import (
	"context"

	"github.com/opinionmap/api/internal/core/domain"
)

type QuestionRepository interface {
	GetAll(ctx context.Context) ([]*domain.Question, error)
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	GetOption(ctx context.Context, optionID int64) (*domain.Option, error)
}

type QuestionService interface {
	ListQuestions(ctx context.Context) ([]*domain.Question, error)
}
