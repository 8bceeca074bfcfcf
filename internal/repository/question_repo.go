package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dsa-tutor/internal/domain"
)

// QuestionRepository define el contrato para preguntas de práctica.
type QuestionRepository interface {
	ListByCategory(ctx context.Context, category string) ([]domain.PracticeQuestion, error)
}

type PgQuestionRepository struct {
	pool *pgxpool.Pool
}

func NewPgQuestionRepository(pool *pgxpool.Pool) *PgQuestionRepository {
	return &PgQuestionRepository{pool: pool}
}

func (r *PgQuestionRepository) ListByCategory(ctx context.Context, category string) ([]domain.PracticeQuestion, error) {
	const query = `
		SELECT id, category, question, difficulty, created_at
		FROM practicequestions
		WHERE category = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.PracticeQuestion
	for rows.Next() {
		var q domain.PracticeQuestion
		if err := rows.Scan(&q.ID, &q.Category, &q.Question, &q.Difficulty, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
