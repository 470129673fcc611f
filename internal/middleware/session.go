package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docsense/internal/domain"
	"docsense/internal/service"
)

const (
	ContextKeySessionID = "session_id"
	ContextKeyClaims    = "claims"
)

// SessionMiddleware returns Gin middleware that validates session tokens and
// injects the session ID into the request context.
func SessionMiddleware(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := sessions.ValidateToken(c.Request.Context(), token)
		if err != nil {
			code, msg := "UNAUTHORIZED", "invalid session token"
			if errors.Is(err, domain.ErrSessionExpired) {
				code, msg = "SESSION_EXPIRED", "session has expired; start a new session"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": code, "message": msg},
			})
			return
		}

		c.Set(ContextKeySessionID, claims.SessionID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetSessionID extracts the session ID from the Gin context.
func GetSessionID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeySessionID)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return val.(uuid.UUID), nil
}
