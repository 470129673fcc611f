package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docsense/internal/domain"
)

// BOM is the UTF-8 byte order mark written ahead of CSV output so Excel on
// Windows detects the encoding.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// csvColumns defines the CSV header row for entity exports.
var csvColumns = []string{"Type", "Value", "Confidence", "Context"}

// Writer wraps csv.Writer for exporting extracted entities as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w. Callers should write BOM
// to w first.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(csvColumns)
}

// WriteEntities converts entities to CSV rows and writes them.
func (w *Writer) WriteEntities(entities []domain.Entity) error {
	for _, e := range entities {
		row := []string{
			string(e.Type),
			e.Value,
			strconv.FormatFloat(e.Confidence, 'f', 2, 64),
			e.Context,
		}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// CSV writes the full entity export (BOM, header, rows) to w.
func CSV(w io.Writer, res *domain.AnalysisResult) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("export.CSV: %w", err)
	}
	cw := NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("export.CSV: %w", err)
	}
	if err := cw.WriteEntities(res.Entities); err != nil {
		return fmt.Errorf("export.CSV: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.CSV: %w", err)
	}
	return nil
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a document name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized, timestamped download filename.
// Format: {sanitized_name}_{YYYYMMDD_HHMMSS}.{ext}
func BuildFilename(name string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("20060102_150405"), format)
}

// ContentType returns the MIME type served for an export format.
func ContentType(format domain.ExportFormat) string {
	switch format {
	case domain.ExportJSON:
		return "application/json"
	case domain.ExportXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case domain.ExportCSV:
		return "text/csv"
	case domain.ExportTXT:
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
