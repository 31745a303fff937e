package handler

import (
	"net/http"
	"strings"

	"college-chat/internal/logger"
	"college-chat/internal/middleware"
	"college-chat/internal/model"
	"college-chat/internal/service"

	"github.com/gin-gonic/gin"
)

const historyTimeLayout = "2006-01-02 15:04:05"

type ChatHandler struct {
	ai      service.Answerer
	history *service.HistoryService
}

func NewChatHandler(ai service.Answerer, history *service.HistoryService) *ChatHandler {
	return &ChatHandler{ai: ai, history: history}
}

// POST /api/chat/
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request."})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message field is required."})
		return
	}

	uid := c.GetInt(middleware.KeyUserID)
	var uploaded string
	if sess := middleware.CurrentSession(c); sess != nil {
		uploaded = sess.UploadedContent
	}
	prompt := service.BuildPrompt(uploaded, req.Message)

	ctx := c.Request.Context()
	answer, err := h.ai.Answer(ctx, prompt)
	if err != nil {
		logger.Warn("chat.answer_failed", "uid", uid, "err", err)
		writeError(c, err)
		return
	}

	if err := h.history.SaveTurn(ctx, uid, req.Message, answer); err != nil {
		logger.Error("chat.save failed", "uid", uid, "err", err)
		writeError(c, err)
		return
	}
	logger.Info("chat.turn", "uid", uid, "with_context", prompt != req.Message)

	c.JSON(http.StatusOK, model.ChatResponse{Response: answer})
}

// GET /api/history/
func (h *ChatHandler) History(c *gin.Context) {
	msgs, err := h.history.Recent(c.Request.Context(), c.GetInt(middleware.KeyUserID), service.MaxHistory)
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]model.HistoryItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, model.HistoryItem{
			ID:        m.ID,
			Sender:    string(m.Sender),
			Text:      m.Message,
			Timestamp: m.Timestamp.Format(historyTimeLayout),
		})
	}
	c.JSON(http.StatusOK, items)
}
