// file: internal/autofill/autofill.go
// version: 1.0.0
// guid: 8e3b1f4a-6c2d-4a97-b5e0-3d7f9c1a2b68

// Package autofill combines a generated summary and a cover lookup for a
// book into a single best-effort result.
package autofill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jdfalk/bookstreamer/internal/ai"
	"github.com/jdfalk/bookstreamer/internal/logging"
	"github.com/jdfalk/bookstreamer/internal/metadata"
	"github.com/jdfalk/bookstreamer/internal/metrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// FallbackSummary replaces the summary whenever generation fails.
const FallbackSummary = "Summary unavailable at this moment."

const (
	DefaultSummaryTimeout = 10 * time.Second
	DefaultCoverTimeout   = 8 * time.Second
)

// Result is the combined autofill payload. CoverURL is nil when no cover
// could be found.
type Result struct {
	Summary  string  `json:"summary"`
	CoverURL *string `json:"coverUrl"`
}

// Options tunes the per-branch behaviour of an Aggregator.
type Options struct {
	SummaryTimeout time.Duration
	CoverTimeout   time.Duration
	Rewrites       []metadata.Rewrite
}

// Aggregator fans out to the summarizer and the cover source for each call.
// It holds no per-request state and is safe for concurrent use.
type Aggregator struct {
	summarizer ai.Summarizer
	covers     metadata.CoverSource
	opts       Options
}

// New creates an Aggregator; zero timeouts take the package defaults.
func New(summarizer ai.Summarizer, covers metadata.CoverSource, opts Options) *Aggregator {
	if opts.SummaryTimeout <= 0 {
		opts.SummaryTimeout = DefaultSummaryTimeout
	}
	if opts.CoverTimeout <= 0 {
		opts.CoverTimeout = DefaultCoverTimeout
	}
	return &Aggregator{
		summarizer: summarizer,
		covers:     covers,
		opts:       opts,
	}
}

// SummarizerName reports the configured summary provider.
func (a *Aggregator) SummarizerName() string { return a.summarizer.Name() }

// CoverSourceName reports the configured cover provider.
func (a *Aggregator) CoverSourceName() string { return a.covers.Name() }

// Autofill runs both lookups concurrently and waits for both. Upstream
// failures never surface here; an error means a local fault in one of the
// branches.
func (a *Aggregator) Autofill(ctx context.Context, title, author string) (Result, error) {
	title = cleanInput(title)
	author = cleanInput(author)

	start := time.Now()
	defer func() { metrics.ObserveAutofillDuration(time.Since(start)) }()

	var (
		summary string
		cover   *string
		g       errgroup.Group
	)

	g.Go(func() (err error) {
		defer recoverBranch("summary", &err)
		summary = a.lookupSummary(ctx, title, author)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverBranch("cover", &err)
		cover = a.lookupCover(ctx, title, author)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	return Result{Summary: summary, CoverURL: cover}, nil
}

func (a *Aggregator) lookupSummary(ctx context.Context, title, author string) string {
	prompt := ai.SummaryPrompt(title, author)
	text, outcome := withFallback(ctx, a.opts.SummaryTimeout, "summary", a.summarizer.Name(), FallbackSummary,
		func(ctx context.Context) (string, string, error) {
			text, err := a.summarizer.Summarize(ctx, prompt)
			if err != nil {
				return "", "", err
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return "", metrics.OutcomeEmpty, nil
			}
			return text, metrics.OutcomeOK, nil
		})
	if outcome == metrics.OutcomeEmpty {
		return FallbackSummary
	}
	return text
}

func (a *Aggregator) lookupCover(ctx context.Context, title, author string) *string {
	cover, _ := withFallback(ctx, a.opts.CoverTimeout, "cover", a.covers.Name(), (*string)(nil),
		func(ctx context.Context) (*string, string, error) {
			raw, err := a.covers.FindCover(ctx, title, author)
			if err != nil {
				return nil, "", err
			}
			u := metadata.NormalizeCoverURL(raw, a.opts.Rewrites)
			if u == "" {
				return nil, metrics.OutcomeEmpty, nil
			}
			return &u, metrics.OutcomeOK, nil
		})
	return cover
}

// withFallback runs call under its own timeout. Any error, including the
// deadline, yields fallback. The outcome is logged and counted.
func withFallback[T any](
	ctx context.Context,
	timeout time.Duration,
	lookup, provider string,
	fallback T,
	call func(context.Context) (T, string, error),
) (T, string) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	value, outcome, err := call(ctx)
	elapsed := time.Since(start)

	if err != nil {
		outcome = metrics.OutcomeFallback
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			outcome = metrics.OutcomeTimeout
		}
		value = fallback
		logging.Warn("upstream lookup failed, using fallback",
			"lookup", lookup, "provider", provider, "outcome", outcome,
			"elapsed_ms", elapsed.Milliseconds(), "error", err)
	} else {
		logging.Debug("upstream lookup finished",
			"lookup", lookup, "provider", provider, "outcome", outcome,
			"elapsed_ms", elapsed.Milliseconds())
	}

	metrics.IncUpstreamLookup(lookup, provider, outcome)
	metrics.ObserveUpstreamDuration(lookup, elapsed)
	return value, outcome
}

func recoverBranch(lookup string, err *error) {
	if r := recover(); r != nil {
		logging.Error("autofill branch panicked", "lookup", lookup, "panic", fmt.Sprint(r))
		*err = fmt.Errorf("%s lookup panicked: %v", lookup, r)
	}
}

// cleanInput trims surrounding whitespace and applies NFC so composed and
// decomposed accents query the upstreams identically.
func cleanInput(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
