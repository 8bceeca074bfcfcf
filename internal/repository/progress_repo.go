package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dsa-tutor/internal/domain"
)

// ProgressRepository define el contrato para registros de progreso.
// Mark es idempotente sobre (user_id, article_id).
type ProgressRepository interface {
	Mark(ctx context.Context, record domain.ProgressRecord) error
	ListByUser(ctx context.Context, userID string) ([]domain.ProgressRecord, error)
}

type PgProgressRepository struct {
	pool *pgxpool.Pool
}

func NewPgProgressRepository(pool *pgxpool.Pool) *PgProgressRepository {
	return &PgProgressRepository{pool: pool}
}

func (r *PgProgressRepository) Mark(ctx context.Context, record domain.ProgressRecord) error {
	// La restricción única (user_id, article_id) garantiza que marcar dos
	// veces no duplica el registro.
	const query = `
		INSERT INTO userprogress (id, user_id, article_id, completed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, article_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.ArticleID,
		record.CompletedAt,
	)
	return err
}

func (r *PgProgressRepository) ListByUser(ctx context.Context, userID string) ([]domain.ProgressRecord, error) {
	const query = `
		SELECT id, user_id, article_id, completed_at
		FROM userprogress
		WHERE user_id = $1
		ORDER BY completed_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ProgressRecord
	for rows.Next() {
		var rec domain.ProgressRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ArticleID, &rec.CompletedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
