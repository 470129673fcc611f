package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsense/internal/domain"
	"docsense/internal/service"
)

type stubSessionService struct {
	claims *service.SessionClaims
	err    error
}

func (s *stubSessionService) Start(_ context.Context) (*service.SessionToken, error) {
	return nil, nil
}

func (s *stubSessionService) ValidateToken(_ context.Context, _ string) (*service.SessionClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func (s *stubSessionService) Reset(_ context.Context, _ uuid.UUID) error { return nil }

func newTestEngine(sessions service.SessionService) (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var seen uuid.UUID
	r := gin.New()
	r.Use(SessionMiddleware(sessions))
	r.GET("/ping", func(c *gin.Context) {
		id, err := GetSessionID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		seen = id
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	sessionID := uuid.New()
	r, seen := newTestEngine(&stubSessionService{claims: &service.SessionClaims{SessionID: sessionID}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sessionID, *seen)
}

func TestSessionMiddleware_MissingHeader(t *testing.T) {
	r, _ := newTestEngine(&stubSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestSessionMiddleware_MalformedHeader(t *testing.T) {
	r, _ := newTestEngine(&stubSessionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	r, _ := newTestEngine(&stubSessionService{err: domain.ErrUnauthorized})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestSessionMiddleware_ExpiredToken(t *testing.T) {
	r, _ := newTestEngine(&stubSessionService{err: domain.ErrSessionExpired})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer stale")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}
