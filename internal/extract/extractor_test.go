package extract

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsense/internal/domain"
)

type stubRecognizer struct {
	text  string
	err   error
	calls int
}

func (r *stubRecognizer) Recognize(images []image.Image) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.text, nil
}

const testMaxBytes = 50 * 1024 * 1024

func TestValidate_AllowedExtensions(t *testing.T) {
	e := New(&stubRecognizer{}, testMaxBytes)

	cases := map[string]domain.FileType{
		"scan.pdf":    domain.FileTypePDF,
		"photo.PNG":   domain.FileTypePNG,
		"photo.jpg":   domain.FileTypeJPG,
		"photo.jpeg":  domain.FileTypeJPG,
		"fax.tiff":    domain.FileTypeTIFF,
		"legacy.bmp":  domain.FileTypeBMP,
		"REPORT.Pdf":  domain.FileTypePDF,
	}
	for name, want := range cases {
		ft, err := e.Validate(name, 1024)
		require.NoError(t, err, name)
		assert.Equal(t, want, ft, name)
	}
}

func TestValidate_RejectsUnsupportedExtension(t *testing.T) {
	e := New(&stubRecognizer{}, testMaxBytes)

	for _, name := range []string{"contract.docx", "notes.txt", "archive.zip", "noextension"} {
		_, err := e.Validate(name, 1024)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFileType, name)
	}
}

func TestValidate_SizeBoundaryInclusive(t *testing.T) {
	e := New(&stubRecognizer{}, testMaxBytes)

	_, err := e.Validate("scan.pdf", testMaxBytes)
	assert.NoError(t, err)

	_, err = e.Validate("scan.pdf", testMaxBytes+1)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestExtract_Image(t *testing.T) {
	rec := &stubRecognizer{text: "recognized text"}
	e := New(rec, testMaxBytes)

	content, err := e.Extract(pngBytes(t, 20, 20), domain.FileTypePNG)

	require.NoError(t, err)
	assert.Equal(t, "recognized text", content.Text)
	assert.Equal(t, domain.SourceRasterImage, content.SourceFormat)
	assert.Equal(t, 1, content.PageCount)
	require.Len(t, content.Images, 1)
	assert.Equal(t, 1, rec.calls)
}

func TestExtract_ImageOCRFailureTolerated(t *testing.T) {
	rec := &stubRecognizer{err: errors.New("no text found")}
	e := New(rec, testMaxBytes)

	content, err := e.Extract(pngBytes(t, 20, 20), domain.FileTypePNG)

	require.NoError(t, err)
	assert.Empty(t, content.Text)
	assert.Len(t, content.Images, 1)
}

// pdfBytes assembles a one-page PDF from the given objects, numbering them
// from 1 and computing the xref offsets.
func pdfBytes(t *testing.T, objects ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)
	return buf.Bytes()
}

func blankPagePDF(t *testing.T) []byte {
	return pdfBytes(t,
		"<</Type/Catalog/Pages 2 0 R>>",
		"<</Type/Pages/Kids[3 0 R]/Count 1>>",
		"<</Type/Page/Parent 2 0 R/MediaBox[0 0 200 200]>>",
	)
}

func textPagePDF(t *testing.T) []byte {
	content := "BT /F1 12 Tf 72 120 Td (Hello invoice) Tj ET"
	return pdfBytes(t,
		"<</Type/Catalog/Pages 2 0 R>>",
		"<</Type/Pages/Kids[3 0 R]/Count 1>>",
		"<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]/Contents 4 0 R/Resources<</Font<</F1 5 0 R>>>>>>",
		fmt.Sprintf("<</Length %d>>\nstream\n%s\nendstream", len(content), content),
		"<</Type/Font/Subtype/Type1/BaseFont/Helvetica>>",
	)
}

func TestExtract_PDFWithoutTextFallsBackToOCR(t *testing.T) {
	rec := &stubRecognizer{text: "scanned page text"}
	e := New(rec, testMaxBytes)

	content, err := e.Extract(blankPagePDF(t), domain.FileTypePDF)

	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "scanned page text", content.Text)
	assert.Equal(t, domain.SourcePageDocument, content.SourceFormat)
	assert.Equal(t, 1, content.PageCount)
	require.Len(t, content.Images, 1)
}

func TestExtract_PDFWithoutTextOCRFailureTolerated(t *testing.T) {
	rec := &stubRecognizer{err: errors.New("no text found")}
	e := New(rec, testMaxBytes)

	content, err := e.Extract(blankPagePDF(t), domain.FileTypePDF)

	require.NoError(t, err)
	assert.Empty(t, content.Text)
	require.Len(t, content.Images, 1)
}

func TestExtract_PDFWithNativeTextSkipsOCR(t *testing.T) {
	rec := &stubRecognizer{text: "should not be used"}
	e := New(rec, testMaxBytes)

	content, err := e.Extract(textPagePDF(t), domain.FileTypePDF)

	require.NoError(t, err)
	assert.Equal(t, 0, rec.calls)
	assert.True(t, strings.Contains(content.Text, "Hello invoice"))
	assert.Equal(t, domain.SourcePageDocument, content.SourceFormat)
	assert.Equal(t, 1, content.PageCount)
	require.Len(t, content.Images, 1)
}

func TestExtract_CorruptImage(t *testing.T) {
	e := New(&stubRecognizer{}, testMaxBytes)

	_, err := e.Extract([]byte("not an image"), domain.FileTypePNG)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_CorruptPDF(t *testing.T) {
	e := New(&stubRecognizer{}, testMaxBytes)

	_, err := e.Extract([]byte("not a pdf"), domain.FileTypePDF)

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestExtract_Deterministic(t *testing.T) {
	rec := &stubRecognizer{text: "same text"}
	e := New(rec, testMaxBytes)
	data := pngBytes(t, 20, 20)

	first, err := e.Extract(data, domain.FileTypePNG)
	require.NoError(t, err)
	second, err := e.Extract(data, domain.FileTypePNG)
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.SourceFormat, second.SourceFormat)
	assert.Equal(t, first.PageCount, second.PageCount)
}
