// file: cmd/providers.go
// version: 1.0.0
// guid: 91c4e2a7-5d3b-4f80-b6e9-2a7d1c8f3e54

package cmd

import (
	"context"
	"fmt"

	"github.com/jdfalk/bookstreamer/internal/ai"
	"github.com/jdfalk/bookstreamer/internal/autofill"
	"github.com/jdfalk/bookstreamer/internal/config"
	"github.com/jdfalk/bookstreamer/internal/logging"
	"github.com/jdfalk/bookstreamer/internal/metadata"
)

// connectionTester is implemented by every upstream client.
type connectionTester interface {
	Name() string
	TestConnection(ctx context.Context) error
}

// summarizerClient is what the commands need from a summary provider.
type summarizerClient interface {
	ai.Summarizer
	connectionTester
	IsEnabled() bool
}

// coverClient is what the commands need from a cover provider.
type coverClient interface {
	metadata.CoverSource
	connectionTester
}

func newSummarizer(ctx context.Context, cfg config.Config) (summarizerClient, error) {
	var s summarizerClient
	switch cfg.SummaryProvider {
	case config.SummaryProviderOpenAI:
		s = ai.NewOpenAISummarizer(ai.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
	case config.SummaryProviderGemini:
		g, err := ai.NewGeminiSummarizer(ctx, ai.GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini summarizer: %w", err)
		}
		s = g
	default:
		return nil, fmt.Errorf("unknown summary provider %q", cfg.SummaryProvider)
	}

	if !s.IsEnabled() {
		logging.Warn("no API key configured, summaries will use the fallback text", "provider", s.Name())
	}
	return s, nil
}

func newCoverSource(cfg config.Config) (coverClient, error) {
	switch cfg.CoverProvider {
	case config.CoverProviderGoogle:
		return metadata.NewGoogleBooksClient(cfg.GoogleBooksBaseURL, cfg.GoogleBooksAPIKey, nil), nil
	case config.CoverProviderOpenLib:
		return metadata.NewOpenLibraryClient(cfg.OpenLibraryBaseURL, nil), nil
	default:
		return nil, fmt.Errorf("unknown cover provider %q", cfg.CoverProvider)
	}
}

func newAggregator(ctx context.Context, cfg config.Config) (*autofill.Aggregator, error) {
	summarizer, err := newSummarizer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	covers, err := newCoverSource(cfg)
	if err != nil {
		return nil, err
	}
	return autofill.New(summarizer, covers, autofill.Options{
		SummaryTimeout: cfg.SummaryTimeout,
		CoverTimeout:   cfg.CoverTimeout,
		Rewrites:       cfg.Rewrites(),
	}), nil
}
