package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docsense/internal/domain"
	"docsense/internal/port"
)

type chatRepo struct {
	db *sqlx.DB
}

// NewChatRepo creates a new PostgreSQL-backed ChatRepository.
func NewChatRepo(db *sqlx.DB) port.ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) Append(ctx context.Context, turn *domain.ChatTurn) error {
	turn.Timestamp = time.Now().UTC()

	query := `INSERT INTO chat_turns
		(id, session_id, document_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		turn.ID, turn.SessionID, turn.DocumentID, turn.Question, turn.Answer, turn.Timestamp)
	if err != nil {
		return fmt.Errorf("chatRepo.Append: %w", err)
	}
	return nil
}

func (r *chatRepo) ListByDocument(ctx context.Context, sessionID, docID uuid.UUID) ([]domain.ChatTurn, error) {
	var turns []domain.ChatTurn
	err := r.db.SelectContext(ctx, &turns,
		`SELECT * FROM chat_turns
		 WHERE document_id = $1 AND session_id = $2
		 ORDER BY created_at ASC`, docID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("chatRepo.ListByDocument: %w", err)
	}
	return turns, nil
}

func (r *chatRepo) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM chat_turns WHERE session_id = $1", sessionID)
	if err != nil {
		return fmt.Errorf("chatRepo.DeleteBySession: %w", err)
	}
	return nil
}
