package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aomkarpatil97-boop/power-network-platform/internal/api/gemini"
)

// askRequest 助手提问请求体
type askRequest struct {
	Query  string             `json:"query" binding:"required"`
	Coords *gemini.Coordinates `json:"coords"`
}

// AskAssistant 咨询 AI 助手，同一会话同时只允许一个请求
func (h *Handler) AskAssistant(c *gin.Context) {
	sess, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req askRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !sess.TryBeginAsk() {
		c.JSON(http.StatusConflict, gin.H{"error": "Assistant request already in flight"})
		return
	}
	defer sess.EndAsk()

	answer := h.advisor.Ask(c.Request.Context(), req.Query, req.Coords)
	h.logger.Debug("Assistant answered",
		zap.String("session_id", sess.ID),
		zap.Int("citations", len(answer.Citations)))

	c.JSON(http.StatusOK, gin.H{"data": answer})
}
