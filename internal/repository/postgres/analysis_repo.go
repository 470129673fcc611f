package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docsense/internal/domain"
	"docsense/internal/port"
)

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, rec *domain.AnalysisRecord) error {
	rec.CreatedAt = time.Now().UTC()

	query := `INSERT INTO analyses
		(id, session_id, document_id, document_type, confidence, model_used,
		 degraded, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.SessionID, rec.DocumentID, rec.DocumentType, rec.Confidence,
		rec.ModelUsed, rec.Degraded, rec.Result, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByDocument(ctx context.Context, sessionID, docID uuid.UUID) (*domain.AnalysisRecord, error) {
	var rec domain.AnalysisRecord
	err := r.db.GetContext(ctx, &rec,
		`SELECT * FROM analyses
		 WHERE document_id = $1 AND session_id = $2
		 ORDER BY created_at DESC LIMIT 1`, docID, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByDocument: %w", err)
	}
	return &rec, nil
}

func (r *analysisRepo) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM analyses WHERE session_id = $1", sessionID)
	if err != nil {
		return fmt.Errorf("analysisRepo.DeleteBySession: %w", err)
	}
	return nil
}
