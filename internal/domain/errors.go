package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrSessionExpired      = errors.New("session expired")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrExtractionFailed    = errors.New("content extraction failed")
	ErrModelCall           = errors.New("model call failed")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrUnsupportedExport   = errors.New("unsupported export format")
)
