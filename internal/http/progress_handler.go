package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsa-tutor/internal/domain"
	"dsa-tutor/internal/service"
)

// ProgressHandler mantiene dependencias para el tracking de lectura.
type ProgressHandler struct {
	logger       *zap.Logger
	progressServ *service.ProgressService
}

func NewProgressHandler(logger *zap.Logger, progressServ *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		logger:       logger,
		progressServ: progressServ,
	}
}

// MarkRead maneja POST /api/users/questions/:id/mark-read.
func (h *ProgressHandler) MarkRead(c *gin.Context) {
	ident, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}
	articleID := c.Param("id")

	record, err := h.progressServ.MarkRead(c.Request.Context(), ident.UserID, articleID)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		h.logger.Error("mark read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": record})
}

// Overview maneja GET /api/users/user/progress.
func (h *ProgressHandler) Overview(c *gin.Context) {
	ident, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	records, summary, err := h.progressServ.Overview(c.Request.Context(), ident.UserID)
	if err != nil {
		h.logger.Error("progress overview failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []domain.ProgressRecord{}
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"summary": summary,
	})
}
