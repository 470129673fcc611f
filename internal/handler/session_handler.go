package handler

import (
	"github.com/gin-gonic/gin"

	"docsense/internal/service"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	sessions service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Start handles POST /api/v1/sessions
func (h *SessionHandler) Start(c *gin.Context) {
	token, err := h.sessions.Start(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, token)
}

// Reset handles DELETE /api/v1/sessions
func (h *SessionHandler) Reset(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}
	if err := h.sessions.Reset(c.Request.Context(), sessionID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "session reset"})
}
