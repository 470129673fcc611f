package analyzer

import (
	"bytes"
	"image"
	"image/png"
	"log"
	"strings"

	"github.com/disintegration/imaging"

	"docsense/internal/domain"
)

const (
	// MaxTextLength bounds the text part of a model request.
	MaxTextLength = 30000
	// MaxImages caps how many images accompany one request.
	MaxImages = 5
	// MaxImageDim is the longest allowed image side before downscaling.
	MaxImageDim = 1024

	truncationMarker = "..."
)

// PrepareContent converts extracted text and images into the ordered content
// parts for one model call: the bounded text part first (when present), then
// at most MaxImages images in their original order, each downscaled with
// Lanczos resampling when its longest side exceeds MaxImageDim. Parts are
// built fresh per call and never persisted.
func PrepareContent(text string, images []image.Image) []domain.ContentPart {
	var parts []domain.ContentPart

	if strings.TrimSpace(text) != "" {
		parts = append(parts, domain.ContentPart{Text: boundText(text, MaxTextLength)})
	}

	for i, img := range images {
		if i >= MaxImages {
			break
		}
		encoded, err := encodeImagePart(img)
		if err != nil {
			log.Printf("analyzer.PrepareContent: failed to process image %d: %v", i, err)
			continue
		}
		parts = append(parts, domain.ContentPart{Image: encoded})
	}

	return parts
}

// boundText collapses runs of whitespace to single spaces and truncates the
// result to maxLen characters, appending a truncation marker when cut.
func boundText(text string, maxLen int) string {
	s := strings.Join(strings.Fields(text), " ")
	if cut, truncated := truncateRunes(s, maxLen); truncated {
		return cut + truncationMarker
	}
	return s
}

// truncateRunes cuts s after at most max characters, never splitting a rune,
// and reports whether anything was cut.
func truncateRunes(s string, max int) (string, bool) {
	if len(s) <= max {
		return s, false
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i], true
		}
		n++
	}
	return s, false
}

func encodeImagePart(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() > MaxImageDim || b.Dy() > MaxImageDim {
		img = imaging.Fit(img, MaxImageDim, MaxImageDim, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
