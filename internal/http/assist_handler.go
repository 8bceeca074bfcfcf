package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dsa-tutor/internal/domain"
	"dsa-tutor/internal/service"
)

// AssistHandler mantiene dependencias para el asistente de estudio.
type AssistHandler struct {
	logger     *zap.Logger
	assistServ *service.AssistService
}

func NewAssistHandler(logger *zap.Logger, assistServ *service.AssistService) *AssistHandler {
	return &AssistHandler{
		logger:     logger,
		assistServ: assistServ,
	}
}

// Ask maneja POST /api/ai/assist.
func (h *AssistHandler) Ask(c *gin.Context) {
	ident, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assist request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	log, err := h.assistServ.Ask(c.Request.Context(), ident.UserID, req.Question)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("assist failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": log.Answer, "log_id": log.ID})
}

// History maneja GET /api/ai/history.
func (h *AssistHandler) History(c *gin.Context) {
	ident, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	logs, err := h.assistServ.History(c.Request.Context(), ident.UserID)
	if err != nil {
		h.logger.Error("assist history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []domain.AssistLog{}
	}
	c.JSON(http.StatusOK, gin.H{"history": logs})
}
