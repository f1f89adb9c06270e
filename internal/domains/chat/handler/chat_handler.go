package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"techstore-backend/internal/domains/chat/model"
	"techstore-backend/internal/domains/chat/service"
	"techstore-backend/internal/shared/middleware"
	"techstore-backend/internal/shared/response"
)

type ChatHandler struct {
	maxWait time.Duration
}

// NewChatHandler; maxWait giới hạn thời gian long-poll của GET ?wait=true
func NewChatHandler(maxWait time.Duration) *ChatHandler {
	return &ChatHandler{maxWait: maxWait}
}

// RenderedMessage là message kèm các dòng đã render cho UI
type RenderedMessage struct {
	model.Message
	Lines []model.Line `json:"lines"`
}

type ChatView struct {
	Transcript []RenderedMessage `json:"transcript"`
	State      model.State       `json:"state"`
	Pending    bool              `json:"pending"`
}

func viewOf(snap model.Snapshot) ChatView {
	msgs := make([]RenderedMessage, len(snap.Transcript))
	for i, m := range snap.Transcript {
		msgs[i] = RenderedMessage{Message: m, Lines: model.Render(m.Content)}
	}
	return ChatView{
		Transcript: msgs,
		State:      snap.State,
		Pending:    snap.Pending,
	}
}

type SubmitRequest struct {
	Text string `json:"text"`
}

// GetTranscript handles GET /session/chat
// ?wait=true: chờ câu trả lời đang in-flight (tối đa maxWait) rồi mới trả.
func (h *ChatHandler) GetTranscript(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}
	chat := s.Chat()

	if wait, _ := strconv.ParseBool(c.Query("wait")); wait {
		timer := time.NewTimer(h.maxWait)
		defer timer.Stop()

		select {
		case <-chat.Wait():
		case <-timer.C:
		case <-c.Request.Context().Done():
			return
		}
	}

	response.Success(c, http.StatusOK, "Chat retrieved successfully", viewOf(chat.Snapshot()))
}

// SubmitMessage handles POST /session/chat/messages
// Trả 202: câu trả lời được append sau, đọc qua GET ?wait=true.
func (h *ChatHandler) SubmitMessage(c *gin.Context) {
	s, ok := middleware.MustSession(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	chat := s.Chat()
	if err := chat.Submit(req.Text); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyQuery):
			response.Error(c, http.StatusBadRequest, "Message is empty", "EMPTY_QUERY")
		case errors.Is(err, service.ErrAwaitingAnswer):
			response.Conflict(c, "Assistant is still answering the previous message", "CHAT_BUSY")
		case errors.Is(err, service.ErrSessionClosed):
			response.Error(c, http.StatusGone, "Session is closed", "SESSION_CLOSED")
		default:
			response.InternalServerError(c, "Failed to submit message")
		}
		return
	}

	response.Success(c, http.StatusAccepted, "Message accepted", viewOf(chat.Snapshot()))
}

// GetHints handles GET /session/chat/hints
func (h *ChatHandler) GetHints(c *gin.Context) {
	response.Success(c, http.StatusOK, "Hints retrieved successfully", gin.H{
		"hints": model.DefaultHints(),
	})
}
