package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dsa-tutor/internal/domain"
)

// AssistLogRepository define el contrato para el historial del asistente.
type AssistLogRepository interface {
	Create(ctx context.Context, log domain.AssistLog) error
	ListByUser(ctx context.Context, userID string) ([]domain.AssistLog, error)
}

type PgAssistLogRepository struct {
	pool *pgxpool.Pool
}

func NewPgAssistLogRepository(pool *pgxpool.Pool) *PgAssistLogRepository {
	return &PgAssistLogRepository{pool: pool}
}

func (r *PgAssistLogRepository) Create(ctx context.Context, log domain.AssistLog) error {
	const query = `
		INSERT INTO assistlogs (id, user_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		log.ID,
		log.UserID,
		log.Question,
		log.Answer,
		log.CreatedAt,
	)
	return err
}

func (r *PgAssistLogRepository) ListByUser(ctx context.Context, userID string) ([]domain.AssistLog, error) {
	const query = `
		SELECT id, user_id, question, answer, created_at
		FROM assistlogs
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.AssistLog
	for rows.Next() {
		var l domain.AssistLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Question, &l.Answer, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
