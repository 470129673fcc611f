package port

import (
	"context"

	"github.com/google/uuid"

	"docsense/internal/domain"
)

// SessionRepository persists anonymous client sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Touch(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentRepository persists uploaded document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, meta *domain.DocumentMeta) error
	GetByID(ctx context.Context, sessionID, docID uuid.UUID) (*domain.DocumentMeta, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.DocumentMeta, int, error)
	Update(ctx context.Context, meta *domain.DocumentMeta) error
	UpdateStatus(ctx context.Context, sessionID, docID uuid.UUID, status domain.DocumentStatus) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

// AnalysisRepository persists analysis results. Records are write-once.
type AnalysisRepository interface {
	Create(ctx context.Context, rec *domain.AnalysisRecord) error
	GetByDocument(ctx context.Context, sessionID, docID uuid.UUID) (*domain.AnalysisRecord, error)
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

// ChatRepository persists the append-only question/answer log.
type ChatRepository interface {
	Append(ctx context.Context, turn *domain.ChatTurn) error
	ListByDocument(ctx context.Context, sessionID, docID uuid.UUID) ([]domain.ChatTurn, error)
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}
