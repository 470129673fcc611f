package port

import (
	"context"

	"docsense/internal/domain"
)

// ModelGateway abstracts the single point of network interaction with the
// generative model. One call, no retries; callers own timeout policy beyond
// the gateway's configured deadline.
type ModelGateway interface {
	// Generate sends the prompt followed by the content parts, in order, and
	// returns the model's raw text output.
	Generate(ctx context.Context, prompt string, parts []domain.ContentPart) (string, error)
	// ModelName reports the configured model identifier, for audit fields.
	ModelName() string
}
