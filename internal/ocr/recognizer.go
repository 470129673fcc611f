// Package ocr provides Tesseract based text recognition with pure Go image
// preprocessing.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"docsense/internal/config"
	"docsense/internal/port"
)

// Recognizer runs Tesseract over preprocessed images. A fresh Tesseract
// client is created per image since the underlying handle is not safe for
// concurrent use.
type Recognizer struct {
	languages      []string
	tessdataPrefix string
	closingKernel  int
}

var _ port.TextRecognizer = (*Recognizer)(nil)

// pageSegModes is the ordered retry chain: automatic segmentation first,
// then single uniform block for images the layout analyzer gives up on.
var pageSegModes = []gosseract.PageSegMode{
	gosseract.PSM_AUTO,
	gosseract.PSM_SINGLE_BLOCK,
}

// New creates a Recognizer from OCR configuration.
func New(cfg config.OCRConfig) *Recognizer {
	langs := strings.Split(cfg.Languages, "+")
	return &Recognizer{
		languages:      langs,
		tessdataPrefix: cfg.TessdataPrefix,
		closingKernel:  cfg.ClosingKernel,
	}
}

// Recognize runs every image through preprocessing and Tesseract, skipping
// images whose recognition fails, and joins the non-empty per-image results
// with blank lines. It returns an error only when no image produced text.
func (r *Recognizer) Recognize(images []image.Image) (string, error) {
	var results []string
	for i, img := range images {
		text, err := r.recognizeOne(img)
		if err != nil {
			log.Printf("ocr.Recognize: image %d failed: %v", i, err)
			continue
		}
		if text != "" {
			results = append(results, text)
		}
	}
	if len(results) == 0 {
		return "", fmt.Errorf("ocr.Recognize: no text recognized in %d image(s)", len(images))
	}
	return strings.Join(results, "\n\n"), nil
}

func (r *Recognizer) recognizeOne(img image.Image) (string, error) {
	processed := Preprocess(img, r.closingKernel)

	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}

	var lastErr error
	for _, psm := range pageSegModes {
		text, err := r.runTesseract(buf.Bytes(), psm)
		if err != nil {
			lastErr = err
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return text, nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", nil
}

func (r *Recognizer) runTesseract(data []byte, psm gosseract.PageSegMode) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if r.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(r.tessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(r.languages...); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetPageSegMode(psm); err != nil {
		return "", fmt.Errorf("set psm: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract psm %d: %w", psm, err)
	}
	return text, nil
}
