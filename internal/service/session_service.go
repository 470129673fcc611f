package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"docsense/internal/config"
	"docsense/internal/domain"
	"docsense/internal/port"
)

// SessionClaims represents the JWT claims carried by a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID uuid.UUID `json:"session_id"`
}

// SessionToken is issued to a client when a session starts.
type SessionToken struct {
	Token     string    `json:"token"`
	SessionID uuid.UUID `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// resetBatchSize bounds how many documents one reset pass loads.
const resetBatchSize = 1000

// SessionService defines the anonymous session contract.
type SessionService interface {
	Start(ctx context.Context) (*SessionToken, error)
	ValidateToken(ctx context.Context, tokenString string) (*SessionClaims, error)
	Reset(ctx context.Context, sessionID uuid.UUID) error
}

type sessionService struct {
	sessionRepo  port.SessionRepository
	documentRepo port.DocumentRepository
	analysisRepo port.AnalysisRepository
	chatRepo     port.ChatRepository
	storage      port.ObjectStorage
	cfg          config.SessionConfig
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(
	sessionRepo port.SessionRepository,
	documentRepo port.DocumentRepository,
	analysisRepo port.AnalysisRepository,
	chatRepo port.ChatRepository,
	storage port.ObjectStorage,
	cfg config.SessionConfig,
) SessionService {
	return &sessionService{
		sessionRepo:  sessionRepo,
		documentRepo: documentRepo,
		analysisRepo: analysisRepo,
		chatRepo:     chatRepo,
		storage:      storage,
		cfg:          cfg,
	}
}

func (s *sessionService) Start(ctx context.Context) (*SessionToken, error) {
	session := &domain.Session{ID: uuid.New()}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("session.Start: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.Expiry)

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		SessionID: session.ID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("session.Start: signing token: %w", err)
	}

	log.Printf("sessionService.Start: created session %s", session.ID)
	return &SessionToken{
		Token:     tokenString,
		SessionID: session.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken verifies the token signature and expiry, then confirms the
// session row still exists; a token outlives a reset session otherwise. Valid
// requests bump the session's last activity.
func (s *sessionService) ValidateToken(ctx context.Context, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrUnauthorized
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.sessionRepo.GetByID(ctx, claims.SessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("session.ValidateToken: %w", err)
	}
	if err := s.sessionRepo.Touch(ctx, claims.SessionID); err != nil {
		log.Printf("sessionService.ValidateToken: touching session %s failed: %v", claims.SessionID, err)
	}
	return claims, nil
}

// Reset removes everything the session accumulated: stored objects, document
// metadata, analyses and chat history, then the session row itself.
func (s *sessionService) Reset(ctx context.Context, sessionID uuid.UUID) error {
	log.Printf("sessionService.Reset: resetting session %s", sessionID)

	docs, _, err := s.documentRepo.ListBySession(ctx, sessionID, 0, resetBatchSize)
	if err != nil {
		return fmt.Errorf("session.Reset: %w", err)
	}
	for i := range docs {
		if err := s.storage.Delete(ctx, docs[i].S3Bucket, docs[i].S3Key); err != nil {
			log.Printf("sessionService.Reset: failed to delete object %s: %v", docs[i].S3Key, err)
		}
	}

	if err := s.chatRepo.DeleteBySession(ctx, sessionID); err != nil {
		return fmt.Errorf("session.Reset: %w", err)
	}
	if err := s.analysisRepo.DeleteBySession(ctx, sessionID); err != nil {
		return fmt.Errorf("session.Reset: %w", err)
	}
	if err := s.documentRepo.DeleteBySession(ctx, sessionID); err != nil {
		return fmt.Errorf("session.Reset: %w", err)
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}
