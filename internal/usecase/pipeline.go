package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Feeds      []string
	BatchSize  int
	Source     ports.FeedSource
	Scraper    ports.Scraper
	Store      ports.SeenStore
	BrandVoice ports.BrandVoiceSource
	Relevance  ports.RelevanceFilter
	Drafter    ports.Drafter
	Dispatcher ports.Dispatcher
	Logger     *slog.Logger
}

// Pipeline implements one curation pass over every configured feed.
type Pipeline struct {
	feeds      []string
	batchSize  int
	source     ports.FeedSource
	scraper    ports.Scraper
	store      ports.SeenStore
	brandVoice ports.BrandVoiceSource
	relevance  ports.RelevanceFilter
	drafter    ports.Drafter
	dispatcher ports.Dispatcher
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	batch := deps.BatchSize
	if batch <= 0 {
		batch = 2
	}
	return &Pipeline{
		feeds:      slices.Clone(deps.Feeds),
		batchSize:  batch,
		source:     deps.Source,
		scraper:    deps.Scraper,
		store:      deps.Store,
		brandVoice: deps.BrandVoice,
		relevance:  deps.Relevance,
		drafter:    deps.Drafter,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Run processes feeds in configured order and articles oldest first. Every
// article that is not already seen ends with exactly one MarkAsSeen call.
// Seen-store and brand-voice failures abort the run. Cancelling ctx stops the
// run before the next article, and an article interrupted mid-evaluation is
// left unmarked so a later run picks it up again.
func (p *Pipeline) Run(ctx context.Context) (domain.RunReport, error) {
	report := domain.NewRunReport(p.newID(), p.now())
	log := p.logger
	if log != nil {
		log = log.With("run_id", report.RunID)
	}
	logInfo(log, "agent run started", "feeds", len(p.feeds))

	if p.source == nil || p.store == nil {
		return report, fmt.Errorf("pipeline: feed source and seen store are required")
	}

	var voice domain.BrandVoice
	if p.brandVoice != nil {
		v, err := p.brandVoice.Load(ctx)
		if err != nil {
			return report, fmt.Errorf("load brand voice: %w", err)
		}
		voice = v
	}

	for _, feedURL := range p.feeds {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		entries, err := p.source.Recent(ctx, feedURL, p.batchSize)
		if err != nil {
			logWarn(log, "could not read feed, skipping", "feed", feedURL, "error", err)
			continue
		}
		report.Feeds++
		if len(entries) == 0 {
			logInfo(log, "no articles found", "feed", feedURL)
			continue
		}

		batch := slices.Clone(entries)
		slices.Reverse(batch)

		for _, article := range batch {
			outcome, err := p.process(ctx, log, article, voice)
			if err != nil {
				return report, err
			}
			report.Outcomes[outcome]++
		}
	}

	report.FinishedAt = p.now()
	logInfo(log, "agent run finished",
		"processed", report.Processed(),
		"published", report.Outcomes[domain.OutcomePublished],
		"skipped_seen", report.Outcomes[domain.OutcomeSeen],
		"duration", report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

func (p *Pipeline) process(ctx context.Context, log *slog.Logger, article domain.Article, voice domain.BrandVoice) (domain.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	seen, err := p.store.HasBeenSeen(ctx, article.Link)
	if err != nil {
		return "", fmt.Errorf("check seen %s: %w", article.Link, err)
	}
	if seen {
		logDebug(log, "already processed", "title", article.Title)
		return domain.OutcomeSeen, nil
	}

	logInfo(log, "new article found", "title", article.Title, "link", article.Link)

	if p.scraper != nil {
		if summary, ok := p.scraper.Summary(ctx, article.Link); ok {
			article.Summary = summary
		}
	}

	outcome := p.evaluate(ctx, log, article, voice)

	// A cancelled ctx makes relevance and drafting report failure; that is
	// not a verdict on the article.
	if err := ctx.Err(); err != nil {
		logWarn(log, "run cancelled, leaving article unmarked", "title", article.Title)
		return "", err
	}

	if err := p.store.MarkAsSeen(ctx, article.Link, article.Title); err != nil {
		return "", fmt.Errorf("mark seen %s: %w", article.Link, err)
	}
	return outcome, nil
}

func (p *Pipeline) evaluate(ctx context.Context, log *slog.Logger, article domain.Article, voice domain.BrandVoice) domain.Outcome {
	if p.relevance == nil || !p.relevance.IsRelevant(ctx, article.Title, article.Summary) {
		logInfo(log, "article not relevant, skipping", "title", article.Title)
		return domain.OutcomeIrrelevant
	}

	logInfo(log, "article is relevant, drafting", "title", article.Title)
	var (
		body string
		ok   bool
	)
	if p.drafter != nil {
		body, ok = p.drafter.Draft(ctx, article.Title, article.Summary, voice)
	}
	if !ok || body == "" {
		logWarn(log, "draft could not be generated", "title", article.Title)
		return domain.OutcomeDraftFailed
	}

	if p.dispatcher != nil {
		report := p.dispatcher.Dispatch(ctx, domain.Draft{Title: article.Title, Link: article.Link, Body: body})
		logDebug(log, "draft dispatched", "delivered", report.Delivered, "failed", report.Failed)
	}
	return domain.OutcomePublished
}
