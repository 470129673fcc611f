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

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, meta *domain.DocumentMeta) error {
	now := time.Now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	query := `INSERT INTO documents
		(id, session_id, file_name, original_name, file_type, file_size,
		 s3_bucket, s3_key, content_type, source_format, page_count, status,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		meta.ID, meta.SessionID, meta.FileName, meta.OriginalName, meta.FileType,
		meta.FileSize, meta.S3Bucket, meta.S3Key, meta.ContentType,
		meta.SourceFormat, meta.PageCount, meta.Status, meta.CreatedAt, meta.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, sessionID, docID uuid.UUID) (*domain.DocumentMeta, error) {
	var meta domain.DocumentMeta
	err := r.db.GetContext(ctx, &meta,
		"SELECT * FROM documents WHERE id = $1 AND session_id = $2", docID, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &meta, nil
}

func (r *documentRepo) ListBySession(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.DocumentMeta, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM documents WHERE session_id = $1 AND status != $2",
		sessionID, domain.DocumentStatusDeleted)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListBySession count: %w", err)
	}

	var docs []domain.DocumentMeta
	err = r.db.SelectContext(ctx, &docs,
		`SELECT * FROM documents
		 WHERE session_id = $1 AND status != $2
		 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		sessionID, domain.DocumentStatusDeleted, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListBySession: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) Update(ctx context.Context, meta *domain.DocumentMeta) error {
	meta.UpdatedAt = time.Now().UTC()

	query := `UPDATE documents SET
		source_format = $1, page_count = $2, status = $3, updated_at = $4
		WHERE id = $5 AND session_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		meta.SourceFormat, meta.PageCount, meta.Status, meta.UpdatedAt,
		meta.ID, meta.SessionID)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, sessionID, docID uuid.UUID, status domain.DocumentStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE documents SET status = $1, updated_at = $2 WHERE id = $3 AND session_id = $4",
		status, time.Now().UTC(), docID, sessionID)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *documentRepo) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE session_id = $1", sessionID)
	if err != nil {
		return fmt.Errorf("documentRepo.DeleteBySession: %w", err)
	}
	return nil
}
