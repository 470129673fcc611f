package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docsense/internal/domain"
	"docsense/internal/service"
)

// ExportHandler handles analysis export endpoints.
type ExportHandler struct {
	exports service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exports service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export handles GET /api/v1/documents/:id/export?format=json|xlsx|csv|txt
func (h *ExportHandler) Export(c *gin.Context) {
	sessionID, ok := sessionFromContext(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportJSON)))

	file, err := h.exports.Export(c.Request.Context(), sessionID, docID, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
