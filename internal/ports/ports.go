package ports

import (
	"context"
	"time"

	"ContentAgent/internal/domain"
)

// FeedSource returns the newest entries of a feed, newest first.
type FeedSource interface {
	Recent(ctx context.Context, feedURL string, limit int) ([]domain.Article, error)
}

// Scraper extracts a short plain-text summary from an article page. The
// boolean is false when nothing usable could be extracted.
type Scraper interface {
	Summary(ctx context.Context, link string) (string, bool)
}

// SeenStore is the durable set of processed article links.
type SeenStore interface {
	HasBeenSeen(ctx context.Context, link string) (bool, error)
	MarkAsSeen(ctx context.Context, link, title string) error
}

// SeenLog exposes the persisted records in append order.
type SeenLog interface {
	Records(ctx context.Context) ([]domain.SeenRecord, error)
}

// BrandVoiceSource loads the draft guidelines.
type BrandVoiceSource interface {
	Load(ctx context.Context) (domain.BrandVoice, error)
}

// Completer sends a single prompt to a language model.
type Completer interface {
	Complete(ctx context.Context, prompt string) domain.Completion
}

// RelevanceFilter decides whether an article deserves a post.
type RelevanceFilter interface {
	IsRelevant(ctx context.Context, title, summary string) bool
}

// Drafter produces a post body; the boolean is false when drafting failed.
type Drafter interface {
	Draft(ctx context.Context, title, summary string, voice domain.BrandVoice) (string, bool)
}

// Destination delivers a draft to one chat channel using its own markup.
type Destination interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, draft domain.Draft) error
}

// Dispatcher fans a draft out to every configured destination.
type Dispatcher interface {
	Dispatch(ctx context.Context, draft domain.Draft) domain.DispatchReport
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
