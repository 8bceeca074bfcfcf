package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dsa-tutor/internal/domain"
	"dsa-tutor/internal/repository"
)

// AdminHandler mantiene dependencias para la gestión de contenido.
type AdminHandler struct {
	logger   *zap.Logger
	articles repository.ArticleRepository
	profiles repository.ProfileRepository
}

func NewAdminHandler(logger *zap.Logger, articles repository.ArticleRepository, profiles repository.ProfileRepository) *AdminHandler {
	return &AdminHandler{
		logger:   logger,
		articles: articles,
		profiles: profiles,
	}
}

// CreateArticle maneja POST /api/admin/articles.
func (h *AdminHandler) CreateArticle(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create article request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	article := domain.Article{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.articles.Create(c.Request.Context(), article); err != nil {
		h.logger.Error("create article failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

// UpdateArticle maneja PUT /api/admin/articles/:id.
func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	var req struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update article request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and content are required"})
		return
	}

	article := domain.Article{
		ID:       c.Param("id"),
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}
	if err := h.articles.Update(c.Request.Context(), article); err != nil {
		h.logger.Error("update article failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// DeleteArticle maneja DELETE /api/admin/articles/:id.
func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	if err := h.articles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Error("delete article failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers maneja GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	c.JSON(http.StatusOK, profiles)
}
