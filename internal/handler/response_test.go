package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"docsense/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrSessionExpired, http.StatusUnauthorized, "SESSION_EXPIRED"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrExtractionFailed, http.StatusUnprocessableEntity, "EXTRACTION_FAILED"},
		{domain.ErrModelCall, http.StatusBadGateway, "MODEL_CALL_FAILED"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{domain.ErrUnsupportedExport, http.StatusBadRequest, "UNSUPPORTED_EXPORT"},
		{errors.New("something else"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, code, msg := MapDomainError(tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.Equal(t, tc.code, code)
		assert.NotEmpty(t, msg)
	}
}

func TestMapDomainError_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("documentService.Upload: %w", domain.ErrFileTooLarge)

	status, code, _ := MapDomainError(wrapped)

	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.Equal(t, "FILE_TOO_LARGE", code)
}
