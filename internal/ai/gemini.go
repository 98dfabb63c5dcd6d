// file: internal/ai/gemini.go
// version: 1.0.0
// guid: 7d2a5f9e-3c1b-4e80-a6d7-5b9e2c4f1a03

package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is the model used when none is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiOptions configures a GeminiSummarizer.
type GeminiOptions struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint (tests, proxies).
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiSummarizer generates summaries with Google's Gemini API.
type GeminiSummarizer struct {
	client  *genai.Client
	model   string
	enabled bool
}

// NewGeminiSummarizer creates the client once; without an API key the
// summarizer is returned disabled instead of failing start-up.
func NewGeminiSummarizer(ctx context.Context, opts GeminiOptions) (*GeminiSummarizer, error) {
	model := opts.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	if opts.APIKey == "" {
		return &GeminiSummarizer{model: model}, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSummarizer{
		client:  client,
		model:   model,
		enabled: true,
	}, nil
}

// Name returns the provider name with its model.
func (g *GeminiSummarizer) Name() string {
	return "gemini:" + g.model
}

// IsEnabled returns whether an API key was configured
func (g *GeminiSummarizer) IsEnabled() bool {
	return g.enabled
}

// Summarize sends the prompt as a single user turn and returns the text.
func (g *GeminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	if !g.enabled {
		return "", ErrDisabled
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.4),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// TestConnection tests the Gemini API connection
func (g *GeminiSummarizer) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := g.Summarize(ctx, SummaryPrompt("The Hobbit", "J.R.R. Tolkien"))
	return err
}
