// file: internal/ai/openai.go
// version: 2.0.0
// guid: 9a0b1c2d-3e4f-5a6b-7c8d-9e0f1a2b3c4d

package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
)

// DefaultOpenAIModel is fast and cost-effective for short summaries.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIOptions configures an OpenAISummarizer.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// OpenAISummarizer generates summaries with the OpenAI chat completions API.
type OpenAISummarizer struct {
	client  *openai.Client
	model   string
	enabled bool
}

// NewOpenAISummarizer creates a new OpenAI summarizer
func NewOpenAISummarizer(opts OpenAIOptions) *OpenAISummarizer {
	model := opts.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	if opts.APIKey == "" {
		return &OpenAISummarizer{model: model}
	}

	// Retries are left to the caller; a failed call takes the fallback path.
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	client := openai.NewClient(reqOpts...)

	return &OpenAISummarizer{
		client:  &client,
		model:   model,
		enabled: true,
	}
}

// Name returns the provider name with its model.
func (p *OpenAISummarizer) Name() string {
	return "openai:" + p.model
}

// IsEnabled returns whether the summarizer is enabled
func (p *OpenAISummarizer) IsEnabled() bool {
	return p.enabled
}

// Summarize asks the chat model for the summary
func (p *OpenAISummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	if !p.enabled {
		return "", ErrDisabled
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You write concise, spoiler-free book descriptions for a personal reading log."),
			openai.UserMessage(prompt),
		},
		Model:       shared.ChatModel(p.model),
		Temperature: param.NewOpt(0.4),
		MaxTokens:   param.NewOpt[int64](300),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI: %w", ErrEmptyResponse)
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// TestConnection tests the OpenAI API connection
func (p *OpenAISummarizer) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := p.Summarize(ctx, SummaryPrompt("The Hobbit", "J.R.R. Tolkien"))
	return err
}
