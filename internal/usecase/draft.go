package usecase

import (
	"context"
	"log/slog"
	"time"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

const (
	DefaultMaxRetries     = 4
	DefaultInitialBackoff = 15 * time.Second
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// DraftGenerator writes the post with exponential backoff on rate limits.
type DraftGenerator struct {
	llm            ports.Completer
	maxRetries     int
	initialBackoff time.Duration
	sleep          SleepFunc
	logger         *slog.Logger
}

var _ ports.Drafter = (*DraftGenerator)(nil)

// NewDraftGenerator falls back to 4 attempts and a 15s initial backoff for
// non-positive settings.
func NewDraftGenerator(llm ports.Completer, maxRetries int, initialBackoff time.Duration, log *slog.Logger) *DraftGenerator {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if initialBackoff <= 0 {
		initialBackoff = DefaultInitialBackoff
	}
	return &DraftGenerator{
		llm:            llm,
		maxRetries:     maxRetries,
		initialBackoff: initialBackoff,
		sleep:          sleepContext,
		logger:         log,
	}
}

// Draft returns the model output verbatim. Only rate-limited attempts are
// retried, doubling the pause each time; the last attempt never sleeps.
func (g *DraftGenerator) Draft(ctx context.Context, title, summary string, voice domain.BrandVoice) (string, bool) {
	if g.llm == nil {
		return "", false
	}

	prompt := draftPrompt(title, summary, string(voice))
	backoff := g.initialBackoff

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		result := g.llm.Complete(ctx, prompt)

		switch result.Status {
		case domain.CompletionOK:
			return result.Text, true
		case domain.CompletionRateLimited:
			if attempt == g.maxRetries {
				logWarn(g.logger, "final attempt rate limited, giving up", "title", title, "attempts", attempt)
				return "", false
			}
			logWarn(g.logger, "rate limit hit, backing off",
				"title", title, "attempt", attempt, "max_attempts", g.maxRetries, "wait", backoff)
			if err := g.sleep(ctx, backoff); err != nil {
				logWarn(g.logger, "backoff interrupted", "title", title, "error", err)
				return "", false
			}
			backoff *= 2
		default:
			logError(g.logger, "drafting failed", "title", title, "error", result.Err)
			return "", false
		}
	}
	return "", false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
