package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsense/internal/domain"
)

func TestCSV_BOMAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sampleResult()))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, BOM))

	r := csv.NewReader(bytes.NewReader(out[len(BOM):]))
	rows, err := r.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Type", "Value", "Confidence", "Context"}, rows[0])
	assert.Equal(t, []string{"organization", "Acme Corp", "0.95", "header"}, rows[1])
	assert.Equal(t, []string{"amount", "$500.00", "0.90", "total line"}, rows[2])
}

func TestCSV_NoEntities(t *testing.T) {
	res := &domain.AnalysisResult{}
	res.NormalizeLists()

	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, res))

	r := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Invoice Q1 2026.pdf":  "Invoice_Q1_2026_pdf",
		"weird///name***":      "weird_name",
		"__already-clean__":    "already-clean",
		"résumé (final).doc":   "r_sum_final_doc",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), in)
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, SanitizeFilename(string(long)), 100)
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 45, 0, time.UTC)

	name := BuildFilename("My Report", domain.ExportXLSX, now)

	assert.Equal(t, "My_Report_20260315_103045.xlsx", name)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType(domain.ExportJSON))
	assert.Equal(t, "text/csv", ContentType(domain.ExportCSV))
	assert.Equal(t, "text/plain", ContentType(domain.ExportTXT))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ContentType(domain.ExportXLSX))
	assert.Equal(t, "application/octet-stream", ContentType(domain.ExportFormat("weird")))
}
