package analyzer

import "docsense/internal/domain"

const (
	documentTypeWeight = 0.30
	entityWeight       = 0.40
	summaryWeight      = 0.20
	keyPointsWeight    = 0.10

	// entityDefaultConfidence stands in for entities that carry no
	// confidence of their own.
	entityDefaultConfidence = 0.5

	// minSummaryLength is the summary length above which the summary
	// contributes to the score.
	minSummaryLength = 50

	neutralScore = 0.5
)

// Score derives a heuristic confidence in [0, 1] from how completely the
// result is populated. A nil result scores neutral.
func Score(res *domain.AnalysisResult) float64 {
	if res == nil {
		return neutralScore
	}

	var score float64

	if res.DocumentType != "" && res.DocumentType != domain.DocTypeUnknown {
		score += documentTypeWeight
	}

	if len(res.Entities) > 0 {
		var sum float64
		for _, e := range res.Entities {
			c := e.Confidence
			if c == 0 {
				c = entityDefaultConfidence
			}
			sum += c
		}
		score += sum / float64(len(res.Entities)) * entityWeight
	}

	if len(res.Summary) > minSummaryLength {
		score += summaryWeight
	}

	if len(res.KeyPoints) > 0 {
		score += keyPointsWeight
	}

	return clamp(score)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
