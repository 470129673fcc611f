// Package gemini implements the model gateway against the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"docsense/internal/config"
	"docsense/internal/domain"
	"docsense/internal/port"
)

// Client wraps one configured Gemini generative model. It is safe for
// concurrent use; the underlying SDK client is stateless per request.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
	cfg    config.GeminiConfig
}

var _ port.ModelGateway = (*Client)(nil)

// NewClient dials the Gemini API and configures the generative model from cfg.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini.NewClient: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(float32(cfg.Temperature))
	model.SetMaxOutputTokens(int32(cfg.MaxOutputTokens))
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
	}

	log.Printf("gemini.NewClient: initialized model %s", cfg.Model)
	return &Client{client: client, model: model, name: cfg.Model, cfg: cfg}, nil
}

// Generate sends the prompt followed by the content parts in order and
// returns the concatenated text of the first candidate. One request, no
// retries; transient upstream failures surface to the caller.
func (c *Client) Generate(ctx context.Context, prompt string, parts []domain.ContentPart) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	input := make([]genai.Part, 0, len(parts)+1)
	input = append(input, genai.Text(prompt))
	for _, p := range parts {
		if p.IsImage() {
			input = append(input, genai.ImageData("png", p.Image))
		} else {
			input = append(input, genai.Text(p.Text))
		}
	}

	resp, err := c.model.GenerateContent(ctx, input...)
	if err != nil {
		return "", fmt.Errorf("gemini.Generate: %w: %v", domain.ErrModelCall, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini.Generate: %w: empty response", domain.ErrModelCall)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini.Generate: %w: no text in response", domain.ErrModelCall)
	}
	return sb.String(), nil
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.name
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}
