package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/google/uuid"

	"docsense/internal/analyzer"
	"docsense/internal/config"
	"docsense/internal/domain"
	"docsense/internal/extract"
	"docsense/internal/port"
)

// DocumentUploadInput is the DTO for document upload requests.
type DocumentUploadInput struct {
	SessionID uuid.UUID
	File      multipart.File
	Header    *multipart.FileHeader
}

// UploadResult pairs the stored document with its analysis.
type UploadResult struct {
	Document *domain.DocumentMeta   `json:"document"`
	Analysis *domain.AnalysisResult `json:"analysis"`
}

// DocumentService defines the document management and analysis contract.
type DocumentService interface {
	Upload(ctx context.Context, input DocumentUploadInput) (*UploadResult, error)
	GetByID(ctx context.Context, sessionID, docID uuid.UUID) (*domain.DocumentMeta, error)
	List(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.DocumentMeta, int, error)
	GetAnalysis(ctx context.Context, sessionID, docID uuid.UUID) (*domain.AnalysisResult, error)
	GetDownloadURL(ctx context.Context, sessionID, docID uuid.UUID) (string, error)
}

type documentService struct {
	documentRepo port.DocumentRepository
	analysisRepo port.AnalysisRepository
	storage      port.ObjectStorage
	extractor    *extract.Extractor
	analyzer     *analyzer.Analyzer
	cfg          *config.S3Config
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	documentRepo port.DocumentRepository,
	analysisRepo port.AnalysisRepository,
	storage port.ObjectStorage,
	extractor *extract.Extractor,
	an *analyzer.Analyzer,
	cfg *config.S3Config,
) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		analysisRepo: analysisRepo,
		storage:      storage,
		extractor:    extractor,
		analyzer:     an,
		cfg:          cfg,
	}
}

// Upload validates, stores, extracts and analyzes one document. The original
// bytes land in object storage before analysis starts so a failed analysis
// still leaves the upload retrievable.
func (s *documentService) Upload(ctx context.Context, input DocumentUploadInput) (*UploadResult, error) {
	fileType, err := s.extractor.Validate(input.Header.Filename, input.Header.Size)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("documentService.Upload: reading file: %w", err)
	}

	docID := uuid.New()
	s3Key := fmt.Sprintf("sessions/%s/documents/%s/%s", input.SessionID, docID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	meta := &domain.DocumentMeta{
		ID:           docID,
		SessionID:    input.SessionID,
		FileName:     docID.String() + "." + string(fileType),
		OriginalName: input.Header.Filename,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  contentType,
		Status:       domain.DocumentStatusPending,
	}

	log.Printf("documentService.Upload: uploading %s (%s, %d bytes) for session %s",
		input.Header.Filename, contentType, input.Header.Size, input.SessionID)

	if err := s.documentRepo.Create(ctx, meta); err != nil {
		return nil, fmt.Errorf("documentService.Upload: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("documentService.Upload: storage upload failed for %s: %v", docID, err)
		_ = s.documentRepo.UpdateStatus(ctx, meta.SessionID, meta.ID, domain.DocumentStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	content, err := s.extractor.Extract(data, fileType)
	if err != nil {
		log.Printf("documentService.Upload: extraction failed for %s: %v", docID, err)
		_ = s.documentRepo.UpdateStatus(ctx, meta.SessionID, meta.ID, domain.DocumentStatusFailed)
		return nil, err
	}

	meta.SourceFormat = content.SourceFormat
	meta.PageCount = content.PageCount

	result, degraded, err := s.analyzer.AnalyzeDocument(ctx, content)
	if err != nil {
		log.Printf("documentService.Upload: analysis failed for %s: %v", docID, err)
		_ = s.documentRepo.UpdateStatus(ctx, meta.SessionID, meta.ID, domain.DocumentStatusFailed)
		return nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("documentService.Upload: encoding result: %w", err)
	}
	record := &domain.AnalysisRecord{
		ID:           uuid.New(),
		SessionID:    input.SessionID,
		DocumentID:   docID,
		DocumentType: result.DocumentType,
		Confidence:   result.Confidence,
		ModelUsed:    result.ModelUsed,
		Degraded:     degraded,
		Result:       payload,
	}
	if err := s.analysisRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("documentService.Upload: %w", err)
	}

	meta.Status = domain.DocumentStatusAnalyzed
	if err := s.documentRepo.Update(ctx, meta); err != nil {
		return nil, fmt.Errorf("documentService.Upload: %w", err)
	}

	return &UploadResult{Document: meta, Analysis: result}, nil
}

func (s *documentService) GetByID(ctx context.Context, sessionID, docID uuid.UUID) (*domain.DocumentMeta, error) {
	return s.documentRepo.GetByID(ctx, sessionID, docID)
}

func (s *documentService) List(ctx context.Context, sessionID uuid.UUID, offset, limit int) ([]domain.DocumentMeta, int, error) {
	return s.documentRepo.ListBySession(ctx, sessionID, offset, limit)
}

func (s *documentService) GetAnalysis(ctx context.Context, sessionID, docID uuid.UUID) (*domain.AnalysisResult, error) {
	record, err := s.analysisRepo.GetByDocument(ctx, sessionID, docID)
	if err != nil {
		return nil, err
	}
	var result domain.AnalysisResult
	if err := json.Unmarshal(record.Result, &result); err != nil {
		return nil, fmt.Errorf("documentService.GetAnalysis: decoding result: %w", err)
	}
	return &result, nil
}

func (s *documentService) GetDownloadURL(ctx context.Context, sessionID, docID uuid.UUID) (string, error) {
	meta, err := s.documentRepo.GetByID(ctx, sessionID, docID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, meta.S3Bucket, meta.S3Key, s.cfg.PresignExpiry)
}
