// file: internal/ai/summarizer.go
// version: 1.0.0
// guid: 0c4e7a1d-9b2f-4d36-8e5a-1f7c3b9d2e84

package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrDisabled is returned by a summarizer that has no API key configured.
var ErrDisabled = errors.New("summarizer is not enabled")

// ErrEmptyResponse is returned when the model answered without any text.
var ErrEmptyResponse = errors.New("model returned no text")

// Summarizer turns a prompt into generated text.
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, prompt string) (string, error)
}

// SummaryPrompt asks for a short spoiler-free description of a book.
func SummaryPrompt(title, author string) string {
	return fmt.Sprintf(`Write a short summary of "%s" by %s in exactly 80 words. No spoilers.`, title, author)
}
