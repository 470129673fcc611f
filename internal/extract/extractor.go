// Package extract turns uploaded file bytes into text and images ready for
// analysis. Extraction is deterministic for the same input bytes.
package extract

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	// Register decoders for every supported raster format.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"docsense/internal/domain"
	"docsense/internal/port"
)

// Extractor validates uploads and extracts their content. Page documents get
// native text extraction with OCR as fallback; raster images always go
// through OCR.
type Extractor struct {
	recognizer port.TextRecognizer
	maxBytes   int64
}

// New creates an Extractor. maxBytes is the inclusive upload size limit.
func New(recognizer port.TextRecognizer, maxBytes int64) *Extractor {
	return &Extractor{recognizer: recognizer, maxBytes: maxBytes}
}

// Validate checks the file name extension and size against the upload policy
// and returns the resolved file type. A file of exactly maxBytes is accepted.
func (e *Extractor) Validate(filename string, size int64) (domain.FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	ft, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
	}
	if size > e.maxBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", domain.ErrFileTooLarge, size, e.maxBytes)
	}
	return ft, nil
}

// Extract dispatches on file type and returns the extracted content.
func (e *Extractor) Extract(data []byte, ft domain.FileType) (*domain.ExtractedContent, error) {
	if ft == domain.FileTypePDF {
		return e.extractPDF(data)
	}
	return e.extractImage(data)
}

// extractPDF pulls native text per page and renders each page to an image.
// When the document carries no extractable text at all, the rendered pages
// are run through OCR instead.
func (e *Extractor) extractPDF(data []byte) (*domain.ExtractedContent, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %v", domain.ErrExtractionFailed, err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	var pages []string
	var images []image.Image

	for i := 0; i < pageCount; i++ {
		text, err := doc.Text(i)
		if err != nil {
			log.Printf("extract.extractPDF: text extraction failed on page %d: %v", i, err)
		} else if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}

		img, err := doc.Image(i)
		if err != nil {
			log.Printf("extract.extractPDF: render failed on page %d: %v", i, err)
			continue
		}
		images = append(images, img)
	}

	fullText := strings.Join(pages, "\n\n")

	if strings.TrimSpace(fullText) == "" && len(images) > 0 {
		log.Printf("extract.extractPDF: no native text in %d page(s), falling back to OCR", pageCount)
		fullText = e.runOCR(images)
	}

	return &domain.ExtractedContent{
		Text:         fullText,
		Images:       images,
		SourceFormat: domain.SourcePageDocument,
		PageCount:    pageCount,
	}, nil
}

// extractImage decodes a raster image and recognizes its text.
func (e *Extractor) extractImage(data []byte) (*domain.ExtractedContent, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrExtractionFailed, err)
	}

	images := []image.Image{img}
	return &domain.ExtractedContent{
		Text:         e.runOCR(images),
		Images:       images,
		SourceFormat: domain.SourceRasterImage,
		PageCount:    1,
	}, nil
}

// runOCR recognizes text across images. Recognition yielding nothing is not
// an extraction failure; the document can still be analyzed from its images.
func (e *Extractor) runOCR(images []image.Image) string {
	text, err := e.recognizer.Recognize(images)
	if err != nil {
		log.Printf("extract.runOCR: %v", err)
		return ""
	}
	return text
}
