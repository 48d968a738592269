package services

import (
	"context"
	"fmt"
	"math"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

type answerService struct {
	questionRepo ports.QuestionRepository
	answerRepo   ports.AnswerRepository
}

func NewAnswerService(questionRepo ports.QuestionRepository, answerRepo ports.AnswerRepository) ports.AnswerService {
	return &answerService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

func (s *answerService) Submit(ctx context.Context, input ports.SubmitAnswerInput) (*domain.Answer, error) {
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	questionID := input.QuestionID
	text := input.Text

	if input.OptionID != 0 {
		opt, err := s.questionRepo.GetOption(ctx, input.OptionID)
		if err != nil {
			return nil, err
		}
		questionID = opt.QuestionID
		text = opt.Text
	} else {
		if text == "" {
			return nil, fmt.Errorf("%w: answer_text is required", domain.ErrInvalidInput)
		}
		// Submission must reference an existing question.
		if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
			return nil, err
		}
	}

	answer := &domain.Answer{
		QuestionID: questionID,
		Text:       text,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
	}

	created, err := s.answerRepo.Insert(ctx, answer)
	if err != nil {
		return nil, fmt.Errorf("failed to insert answer: %w", err)
	}

	return created, nil
}

func (s *answerService) SubmitBatch(ctx context.Context, inputs []ports.SubmitAnswerInput) ([]*domain.Answer, error) {
	var created []*domain.Answer
	for i, input := range inputs {
		answer, err := s.Submit(ctx, input)
		if err != nil {
			// Abort the remaining submissions; rows already inserted stay.
			return created, fmt.Errorf("submission %d of %d failed: %w", i+1, len(inputs), err)
		}
		created = append(created, answer)
	}
	return created, nil
}

func validateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) {
		return fmt.Errorf("%w: latitude must be a finite number", domain.ErrInvalidInput)
	}
	if math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return fmt.Errorf("%w: longitude must be a finite number", domain.ErrInvalidInput)
	}
	return nil
}
