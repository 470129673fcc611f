package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsense/internal/domain"
)

type stubGateway struct {
	response string
	err      error
	prompt   string
	parts    []domain.ContentPart
}

func (g *stubGateway) Generate(_ context.Context, prompt string, parts []domain.ContentPart) (string, error) {
	g.prompt = prompt
	g.parts = parts
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func (g *stubGateway) ModelName() string { return "test-model" }

func TestAnalyzeDocument_Success(t *testing.T) {
	gw := &stubGateway{response: `{
		"document_type": "invoice",
		"summary": "An invoice from Acme Corp covering consulting work in January.",
		"entities": [{"type": "organization", "value": "Acme Corp", "confidence": 0.9}],
		"key_points": ["due in 30 days"]
	}`}
	a := New(gw)

	res, degraded, err := a.AnalyzeDocument(context.Background(), &domain.ExtractedContent{Text: "invoice text"})

	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, domain.DocTypeInvoice, res.DocumentType)
	assert.Equal(t, "test-model", res.ModelUsed)
	assert.Equal(t, 1.0, res.Confidence)
	assert.GreaterOrEqual(t, res.ProcessingTime, 0.0)

	ts, parseErr := time.Parse(time.RFC3339, res.Timestamp)
	require.NoError(t, parseErr)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestAnalyzeDocument_DegradedResponse(t *testing.T) {
	gw := &stubGateway{response: "I cannot comply with the JSON format."}
	a := New(gw)

	res, degraded, err := a.AnalyzeDocument(context.Background(), &domain.ExtractedContent{Text: "text"})

	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, domain.DocTypeUnknown, res.DocumentType)
	assert.NotEmpty(t, res.RawResponse)
}

func TestAnalyzeDocument_GatewayError(t *testing.T) {
	gw := &stubGateway{err: domain.ErrModelCall}
	a := New(gw)

	res, _, err := a.AnalyzeDocument(context.Background(), &domain.ExtractedContent{Text: "text"})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrModelCall)
}

func TestAnalyzeDocument_UsesAnalysisPrompt(t *testing.T) {
	gw := &stubGateway{response: `{"document_type": "other"}`}
	a := New(gw)

	_, _, err := a.AnalyzeDocument(context.Background(), &domain.ExtractedContent{Text: "text"})

	require.NoError(t, err)
	assert.Contains(t, gw.prompt, "Return ONLY valid JSON")
	require.Len(t, gw.parts, 1)
	assert.Equal(t, "text", gw.parts[0].Text)
}

func TestAnswerQuestion(t *testing.T) {
	gw := &stubGateway{response: "  The total amount is $500.  \n"}
	a := New(gw)

	answer, err := a.AnswerQuestion(context.Background(), "What is the total?", &domain.ExtractedContent{Text: "total: $500"})

	require.NoError(t, err)
	assert.Equal(t, "The total amount is $500.", answer)
	assert.Contains(t, gw.prompt, "Question: What is the total?")
	assert.False(t, strings.Contains(gw.prompt, "JSON format:"))
}

func TestAnswerQuestion_GatewayError(t *testing.T) {
	gw := &stubGateway{err: errors.New("upstream timeout")}
	a := New(gw)

	_, err := a.AnswerQuestion(context.Background(), "anything", &domain.ExtractedContent{Text: "text"})

	assert.Error(t, err)
}
