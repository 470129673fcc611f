// Package export renders analysis results into downloadable formats.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"docsense/internal/domain"
)

// TextReport renders the fixed plain-text report layout. Sections for key
// points and risk factors appear only when they have content.
func TextReport(res *domain.AnalysisResult, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("\nDOCUMENT ANALYSIS REPORT\n")
	fmt.Fprintf(&sb, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	fmt.Fprintf(&sb, "DOCUMENT TYPE: %s\n", res.DocumentType)
	fmt.Fprintf(&sb, "CONFIDENCE: %.1f%%\n\n", res.Confidence*100)

	sb.WriteString("EXECUTIVE SUMMARY:\n")
	summary := res.Summary
	if summary == "" {
		summary = "No summary available"
	}
	sb.WriteString(summary + "\n\n")

	sb.WriteString("KEY ENTITIES:\n")
	for _, e := range res.Entities {
		fmt.Fprintf(&sb, "- %s: %s\n", e.Type, e.Value)
	}

	if len(res.KeyPoints) > 0 {
		sb.WriteString("\nKEY POINTS:\n")
		for i, p := range res.KeyPoints {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
		}
	}

	if len(res.RiskFactors) > 0 {
		sb.WriteString("\nRISK FACTORS:\n")
		for i, r := range res.RiskFactors {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, r)
		}
	}

	return sb.String()
}

// JSON renders the full result as indented JSON.
func JSON(res *domain.AnalysisResult) ([]byte, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export.JSON: %w", err)
	}
	return data, nil
}
