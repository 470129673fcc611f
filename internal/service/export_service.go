package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docsense/internal/domain"
	"docsense/internal/export"
	"docsense/internal/port"
)

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a document's analysis into a downloadable format.
type ExportService interface {
	Export(ctx context.Context, sessionID, docID uuid.UUID, format domain.ExportFormat) (*ExportFile, error)
}

type exportService struct {
	documentRepo port.DocumentRepository
	documents    DocumentService
}

// NewExportService creates a new ExportService implementation.
func NewExportService(documentRepo port.DocumentRepository, documents DocumentService) ExportService {
	return &exportService{
		documentRepo: documentRepo,
		documents:    documents,
	}
}

func (s *exportService) Export(ctx context.Context, sessionID, docID uuid.UUID, format domain.ExportFormat) (*ExportFile, error) {
	meta, err := s.documentRepo.GetByID(ctx, sessionID, docID)
	if err != nil {
		return nil, err
	}
	result, err := s.documents.GetAnalysis(ctx, sessionID, docID)
	if err != nil {
		return nil, err
	}

	var data []byte
	now := time.Now()

	switch format {
	case domain.ExportJSON:
		data, err = export.JSON(result)
	case domain.ExportXLSX:
		data, err = export.Workbook(result)
	case domain.ExportCSV:
		var buf bytes.Buffer
		err = export.CSV(&buf, result)
		data = buf.Bytes()
	case domain.ExportTXT:
		data = []byte(export.TextReport(result, now))
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedExport, format)
	}
	if err != nil {
		return nil, fmt.Errorf("exportService.Export: %w", err)
	}

	base := strings.TrimSuffix(meta.OriginalName, "."+string(meta.FileType))
	return &ExportFile{
		Filename:    export.BuildFilename(base, format, now),
		ContentType: export.ContentType(format),
		Data:        data,
	}, nil
}
