package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/opinionmap/api/internal/core/domain"
	"github.com/opinionmap/api/internal/core/ports"
)

type answerRepository struct {
	db *sql.DB
}

func NewAnswerRepository(db *sql.DB) ports.AnswerRepository {
	return &answerRepository{
		db: db,
	}
}

func (r *answerRepository) Insert(ctx context.Context, answer *domain.Answer) (*domain.Answer, error) {
	query := `
		INSERT INTO answers (question_id, answer_text, latitude, longitude)
		VALUES ($1, $2, $3, $4)
		RETURNING id, question_id, answer_text, latitude, longitude, created_at
	`

	var created domain.Answer
	err := r.db.QueryRowContext(ctx, query,
		answer.QuestionID, answer.Text, answer.Latitude, answer.Longitude,
	).Scan(
		&created.ID, &created.QuestionID, &created.Text,
		&created.Latitude, &created.Longitude, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert answer: %w", err)
	}

	return &created, nil
}

func (r *answerRepository) ListAll(ctx context.Context) ([]domain.ProximityAnswer, error) {
	query := `
		SELECT a.id, a.question_id, a.answer_text, a.latitude, a.longitude, a.created_at,
		       COALESCE(q.question_text, '')
		FROM answers a
		LEFT JOIN questions q ON a.question_id = q.id
		ORDER BY a.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	return scanProximityAnswers(rows)
}

// FindWithinRadius pushes the haversine distance predicate into the store
// so only matching rows cross the wire. Must stay equivalent to the
// in-memory filter over geo.Distance, up to float rounding at the radius
// boundary.
func (r *answerRepository) FindWithinRadius(ctx context.Context, center domain.Location, radiusKM float64) ([]domain.ProximityAnswer, error) {
	query := `
		SELECT a.id, a.question_id, a.answer_text, a.latitude, a.longitude, a.created_at,
		       COALESCE(q.question_text, '')
		FROM answers a
		LEFT JOIN questions q ON a.question_id = q.id
		WHERE (2 * 6371 * asin(least(1.0, sqrt(
			power(sin(radians(a.latitude - $1) / 2), 2) +
			cos(radians($1)) * cos(radians(a.latitude)) *
			power(sin(radians(a.longitude - $2) / 2), 2)
		)))) <= $3
		ORDER BY a.id
	`
	rows, err := r.db.QueryContext(ctx, query, center.Latitude, center.Longitude, radiusKM)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers within radius: %w", err)
	}
	defer rows.Close()

	return scanProximityAnswers(rows)
}

func scanProximityAnswers(rows *sql.Rows) ([]domain.ProximityAnswer, error) {
	var answers []domain.ProximityAnswer
	for rows.Next() {
		var a domain.ProximityAnswer
		if err := rows.Scan(
			&a.ID, &a.QuestionID, &a.Text,
			&a.Latitude, &a.Longitude, &a.CreatedAt,
			&a.QuestionText,
		); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answers: %w", err)
	}
	return answers, nil
}
