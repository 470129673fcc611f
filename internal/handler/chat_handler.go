package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docsense/internal/service"
)

// ChatHandler handles per-document question answering endpoints.
type ChatHandler struct {
	chat service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// askRequest is the DTO for chat questions.
type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask handles POST /api/v1/documents/:id/questions
func (h *ChatHandler) Ask(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "question field is required")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "question must not be empty")
		return
	}

	turn, err := h.chat.Ask(c.Request.Context(), sessionID, docID, req.Question)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, turn)
}

// History handles GET /api/v1/documents/:id/chat
func (h *ChatHandler) History(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	turns, err := h.chat.History(c.Request.Context(), sessionID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, turns)
}
