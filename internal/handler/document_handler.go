package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docsense/internal/service"
)

// DocumentHandler handles document upload and retrieval endpoints.
type DocumentHandler struct {
	documents service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documents service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// Upload handles POST /api/v1/documents. The document is stored, extracted
// and analyzed in one request; the response carries both the metadata and
// the analysis result.
func (h *DocumentHandler) Upload(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.documents.Upload(c.Request.Context(), service.DocumentUploadInput{
		SessionID: sessionID,
		File:      file,
		Header:    header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	docs, total, err := h.documents.List(c.Request.Context(), sessionID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	meta, err := h.documents.GetByID(c.Request.Context(), sessionID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	analysis, err := h.documents.GetAnalysis(c.Request.Context(), sessionID, docID)
	if err != nil {
		// A pending or failed document has no analysis yet.
		RespondOK(c, gin.H{"document": meta})
		return
	}

	RespondOK(c, gin.H{"document": meta, "analysis": analysis})
}

// Download handles GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	url, err := h.documents.GetDownloadURL(c.Request.Context(), sessionID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}
