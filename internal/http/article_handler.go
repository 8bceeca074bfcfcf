package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"dsa-tutor/internal/domain"
	"dsa-tutor/internal/repository"
)

// ArticleHandler mantiene dependencias para lectura de artículos y preguntas.
type ArticleHandler struct {
	logger    *zap.Logger
	articles  repository.ArticleRepository
	questions repository.QuestionRepository
}

func NewArticleHandler(logger *zap.Logger, articles repository.ArticleRepository, questions repository.QuestionRepository) *ArticleHandler {
	return &ArticleHandler{
		logger:    logger,
		articles:  articles,
		questions: questions,
	}
}

// ListArticles maneja GET /api/users/articles.
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	articles, err := h.articles.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list articles failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	c.JSON(http.StatusOK, articles)
}

// RelatedQuestions maneja GET /api/users/articles/:id/questions.
// Las preguntas se buscan por la categoría del artículo.
func (h *ArticleHandler) RelatedQuestions(c *gin.Context) {
	articleID := c.Param("id")

	article, err := h.articles.GetByID(c.Request.Context(), articleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		h.logger.Error("get article failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if article.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article does not have a category"})
		return
	}

	questions, err := h.questions.ListByCategory(c.Request.Context(), article.Category)
	if err != nil {
		h.logger.Error("list questions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if questions == nil {
		questions = []domain.PracticeQuestion{}
	}

	c.JSON(http.StatusOK, gin.H{
		"article":           article,
		"related_questions": questions,
	})
}
