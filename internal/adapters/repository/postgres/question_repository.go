package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

type questionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) ports.QuestionRepository {
	return &questionRepository{
		db: db,
	}
}

func (r *questionRepository) GetAll(ctx context.Context) ([]*domain.Question, error) {
	query := `
		SELECT id, question_text
		FROM questions
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Text); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		options, err := r.fetchOptions(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		q.Options = options

		questions = append(questions, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	query := `
		SELECT id, question_text
		FROM questions
		WHERE id = $1
	`

	var q domain.Question
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.Text)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	options, err := r.fetchOptions(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	q.Options = options

	return &q, nil
}

func (r *questionRepository) GetOption(ctx context.Context, optionID int64) (*domain.Option, error) {
	query := `
		SELECT id, question_id, option_text
		FROM options
		WHERE id = $1
	`

	var opt domain.Option
	err := r.db.QueryRowContext(ctx, query, optionID).Scan(&opt.ID, &opt.QuestionID, &opt.Text)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to get option: %w", err)
	}

	return &opt, nil
}

func (r *questionRepository) fetchOptions(ctx context.Context, questionID int64) ([]domain.Option, error) {
	query := `
		SELECT id, question_id, option_text
		FROM options
		WHERE question_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}
	defer rows.Close()

	options := []domain.Option{}
	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}
