package analyzer

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"docsense/internal/domain"
	"docsense/internal/port"
)

// Analyzer runs the document analysis pipeline: content preparation, a single
// model call, response parsing with fallback and confidence scoring.
type Analyzer struct {
	gateway port.ModelGateway
}

// New creates an Analyzer backed by the given model gateway.
func New(gateway port.ModelGateway) *Analyzer {
	return &Analyzer{gateway: gateway}
}

// AnalyzeDocument performs one full structured analysis of the extracted
// content. The returned bool reports whether the result came from the
// degraded parse path. An error is returned only when the model call itself
// fails; unparseable responses degrade instead of failing.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, content *domain.ExtractedContent) (*domain.AnalysisResult, bool, error) {
	start := time.Now()

	parts := PrepareContent(content.Text, content.Images)
	raw, err := a.gateway.Generate(ctx, BuildAnalysisPrompt(), parts)
	if err != nil {
		return nil, false, fmt.Errorf("analyzer.AnalyzeDocument: %w", err)
	}

	outcome := Parse(raw)
	res := outcome.Result
	res.Confidence = Score(&res)
	res.ProcessingTime = time.Since(start).Seconds()
	res.Timestamp = time.Now().UTC().Format(time.RFC3339)
	res.ModelUsed = a.gateway.ModelName()

	if outcome.Degraded {
		log.Printf("analyzer.AnalyzeDocument: degraded result, type=%s confidence=%.2f", res.DocumentType, res.Confidence)
	} else {
		log.Printf("analyzer.AnalyzeDocument: type=%s entities=%d confidence=%.2f in %.2fs",
			res.DocumentType, len(res.Entities), res.Confidence, res.ProcessingTime)
	}
	return &res, outcome.Degraded, nil
}

// AnswerQuestion asks the model a free-form question about the extracted
// content and returns the plain-text answer.
func (a *Analyzer) AnswerQuestion(ctx context.Context, question string, content *domain.ExtractedContent) (string, error) {
	parts := PrepareContent(content.Text, content.Images)
	raw, err := a.gateway.Generate(ctx, BuildQAPrompt(question), parts)
	if err != nil {
		return "", fmt.Errorf("analyzer.AnswerQuestion: %w", err)
	}
	return strings.TrimSpace(raw), nil
}
