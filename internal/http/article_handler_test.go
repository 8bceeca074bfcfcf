package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"dsa-tutor/internal/domain"
)

type stubArticleRepo struct {
	articles map[string]domain.Article
}

func (m *stubArticleRepo) Create(_ context.Context, a domain.Article) error { return nil }
func (m *stubArticleRepo) Update(_ context.Context, a domain.Article) error { return nil }
func (m *stubArticleRepo) Delete(_ context.Context, id string) error        { return nil }

func (m *stubArticleRepo) GetByID(_ context.Context, id string) (domain.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return domain.Article{}, pgx.ErrNoRows
	}
	return a, nil
}

func (m *stubArticleRepo) List(_ context.Context) ([]domain.Article, error) {
	var out []domain.Article
	for _, a := range m.articles {
		out = append(out, a)
	}
	return out, nil
}

func (m *stubArticleRepo) Count(_ context.Context) (int, error) { return len(m.articles), nil }

type stubQuestionRepo struct {
	questions []domain.PracticeQuestion
}

func (m *stubQuestionRepo) ListByCategory(_ context.Context, category string) ([]domain.PracticeQuestion, error) {
	var out []domain.PracticeQuestion
	for _, q := range m.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

func setupArticleRouter(articles *stubArticleRepo, questions *stubQuestionRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewArticleHandler(zap.NewNop(), articles, questions)
	r := gin.New()
	r.GET("/articles", h.ListArticles)
	r.GET("/articles/:id/questions", h.RelatedQuestions)
	return r
}

func TestRelatedQuestionsUnknownArticle(t *testing.T) {
	r := setupArticleRouter(&stubArticleRepo{articles: map[string]domain.Article{}}, &stubQuestionRepo{})

	req := httptest.NewRequest(http.MethodGet, "/articles/missing/questions", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRelatedQuestionsArticleWithoutCategory(t *testing.T) {
	articles := &stubArticleRepo{articles: map[string]domain.Article{
		"a1": {ID: "a1", Title: "Intro", CreatedAt: time.Now().UTC()},
	}}
	r := setupArticleRouter(articles, &stubQuestionRepo{})

	req := httptest.NewRequest(http.MethodGet, "/articles/a1/questions", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRelatedQuestionsByCategory(t *testing.T) {
	articles := &stubArticleRepo{articles: map[string]domain.Article{
		"a1": {ID: "a1", Title: "Linked lists", Category: "lists", CreatedAt: time.Now().UTC()},
	}}
	questions := &stubQuestionRepo{questions: []domain.PracticeQuestion{
		{ID: "q1", Category: "lists", Question: "Reverse a list"},
		{ID: "q2", Category: "graphs", Question: "BFS"},
	}}
	r := setupArticleRouter(articles, questions)

	req := httptest.NewRequest(http.MethodGet, "/articles/a1/questions", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Reverse a list") || strings.Contains(body, "BFS") {
		t.Fatalf("expected only same-category questions, got %s", body)
	}
}
