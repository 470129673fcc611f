package analyzer

import (
	"encoding/json"
	"log"
	"strings"

	"docsense/internal/domain"
)

// fallbackSummaryLimit bounds the summary built from an unparseable response.
const fallbackSummaryLimit = 500

// Outcome is the result of parsing a raw model response. Degraded is set when
// the response was not valid JSON and the fallback result was built instead.
type Outcome struct {
	Result   domain.AnalysisResult
	Degraded bool
}

// Parse turns a raw model response into an analysis result. It strips
// markdown code fences, trims whitespace and attempts a strict JSON decode.
// On any decode failure it degrades to a minimal result wrapping the raw
// text; it never returns an error.
func Parse(raw string) Outcome {
	text := strings.TrimSpace(raw)
	candidate := stripCodeFence(text)

	if !strings.HasPrefix(candidate, "{") {
		log.Printf("analyzer.Parse: response is not a JSON object, using fallback")
		return Outcome{Result: fallbackResult(text), Degraded: true}
	}

	var res domain.AnalysisResult
	if err := json.Unmarshal([]byte(candidate), &res); err != nil {
		log.Printf("analyzer.Parse: invalid JSON response, using fallback: %v", err)
		return Outcome{Result: fallbackResult(text), Degraded: true}
	}

	normalize(&res)
	return Outcome{Result: res}
}

// stripCodeFence removes a surrounding markdown code fence, with or without a
// language tag, leaving the enclosed payload.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		// A language tag such as "json" sits alone on the opening line.
		if first != "" && !strings.ContainsAny(first, "{}") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func normalize(res *domain.AnalysisResult) {
	if res.DocumentType == "" {
		res.DocumentType = domain.DocTypeUnknown
	}
	if res.Sentiment == "" {
		res.Sentiment = domain.SentimentNeutral
	}
	if res.Urgency == "" {
		res.Urgency = domain.UrgencyMedium
	}
	if res.Completeness == "" {
		res.Completeness = domain.CompletenessUnknown
	}
	res.NormalizeLists()
}

// fallbackResult wraps an unparseable response so the caller still gets a
// usable result. The full raw text is preserved for inspection.
func fallbackResult(text string) domain.AnalysisResult {
	summary := text
	if cut, truncated := truncateRunes(summary, fallbackSummaryLimit); truncated {
		summary = cut + truncationMarker
	}
	res := domain.AnalysisResult{
		DocumentType: domain.DocTypeUnknown,
		Summary:      summary,
		Sentiment:    domain.SentimentNeutral,
		Urgency:      domain.UrgencyMedium,
		Completeness: domain.CompletenessUnknown,
		RawResponse:  text,
	}
	res.NormalizeLists()
	return res
}
