package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dsa-tutor/internal/domain"
	"dsa-tutor/internal/repository"
)

// ProgressService marca artículos leídos y calcula el resumen de avance.
type ProgressService struct {
	articles repository.ArticleRepository
	progress repository.ProgressRepository
}

func NewProgressService(articles repository.ArticleRepository, progress repository.ProgressRepository) *ProgressService {
	return &ProgressService{
		articles: articles,
		progress: progress,
	}
}

var ErrArticleNotFound = errors.New("article not found")

// MarkRead registra la lectura; repetir la marca es idempotente.
func (s *ProgressService) MarkRead(ctx context.Context, userID, articleID string) (domain.ProgressRecord, error) {
	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProgressRecord{}, ErrArticleNotFound
		}
		return domain.ProgressRecord{}, err
	}

	record := domain.ProgressRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		ArticleID:   articleID,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.progress.Mark(ctx, record); err != nil {
		return domain.ProgressRecord{}, err
	}
	return record, nil
}

// Overview devuelve los registros del usuario junto al resumen de avance.
func (s *ProgressService) Overview(ctx context.Context, userID string) ([]domain.ProgressRecord, domain.ProgressSummary, error) {
	records, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.ProgressSummary{}, err
	}
	total, err := s.articles.Count(ctx)
	if err != nil {
		return nil, domain.ProgressSummary{}, err
	}

	summary := domain.ProgressSummary{
		Completed:     len(records),
		TotalArticles: total,
	}
	if total > 0 {
		summary.Percent = float64(len(records)) * 100 / float64(total)
	}
	return records, summary, nil
}
