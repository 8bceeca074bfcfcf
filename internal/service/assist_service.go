package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dsa-tutor/internal/domain"
	"dsa-tutor/internal/llm"
	"dsa-tutor/internal/repository"
)

// AssistService responde preguntas de DSA con una sola llamada al LLM y
// registra cada intercambio. Sin reintentos ni orquestación adicional.
type AssistService struct {
	logger *zap.Logger
	client llm.Client
	logs   repository.AssistLogRepository
}

func NewAssistService(logger *zap.Logger, client llm.Client, logs repository.AssistLogRepository) *AssistService {
	return &AssistService{
		logger: logger,
		client: client,
		logs:   logs,
	}
}

var ErrEmptyQuestion = errors.New("question is required")

const assistPreamble = "You are a tutor for data structures and algorithms. " +
	"Explain the concept, outline an approach and include a short code example when it helps."

// Ask genera la respuesta y persiste el log antes de devolverla.
func (s *AssistService) Ask(ctx context.Context, userID, question string) (domain.AssistLog, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.AssistLog{}, ErrEmptyQuestion
	}

	prompt := fmt.Sprintf("%s\n\nStudent question: %s", assistPreamble, question)
	answer, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return domain.AssistLog{}, err
	}

	log := domain.AssistLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.logs.Create(ctx, log); err != nil {
		// La respuesta ya se generó; un log perdido no debe ocultarla.
		s.logger.Warn("assist log persist failed", zap.Error(err), zap.String("user_id", userID))
	}
	return log, nil
}

// History devuelve los intercambios del usuario, más recientes primero.
func (s *AssistService) History(ctx context.Context, userID string) ([]domain.AssistLog, error) {
	return s.logs.ListByUser(ctx, userID)
}
