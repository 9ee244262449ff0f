package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ContentAgent/internal/config"
	"ContentAgent/internal/dashboard"
	"ContentAgent/internal/domain"
	"ContentAgent/internal/extractor"
	"ContentAgent/internal/infrastructure/feed"
	"ContentAgent/internal/infrastructure/llm"
	"ContentAgent/internal/infrastructure/scheduler"
	"ContentAgent/internal/infrastructure/scrape"
	"ContentAgent/internal/infrastructure/storage"
	"ContentAgent/internal/infrastructure/telegram"
	"ContentAgent/internal/infrastructure/webhook"
	"ContentAgent/internal/logging"
	"ContentAgent/internal/ports"
	"ContentAgent/internal/usecase"
)

type seenStore interface {
	ports.SeenStore
	ports.SeenLog
}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	store    seenStore
	closers  []func() error
	pipeline *usecase.Pipeline
}

// New builds the application. Only the seen store is opened eagerly; every
// other adapter is cheap to construct.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	a := &Application{cfg: cfg, logger: baseLogger}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}
	a.store = store

	ext, err := newExtractorRegistry(cfg.Scrape).Resolve(cfg.Scrape.Extractor)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("scrape extractor: %w", err)
	}

	completer, err := newCompleter(cfg.LLM)
	if err != nil {
		a.Close()
		return nil, err
	}

	destinations := []ports.Destination{
		webhook.NewSlack(cfg.Notifications.Slack.WebhookURL, nil),
		webhook.NewDiscord(cfg.Notifications.Discord.WebhookURL, nil),
		telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID),
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Feeds:      cfg.Feeds,
		BatchSize:  cfg.BatchSize,
		Source:     feed.NewSource(nil, baseLogger.With("component", "feed")),
		Scraper:    scrape.NewPageScraper(nil, ext, cfg.Scrape, baseLogger.With("component", "scraper")),
		Store:      store,
		BrandVoice: storage.NewBrandVoiceFile(cfg.BrandVoicePath),
		Relevance:  usecase.NewRelevanceFilter(completer, baseLogger.With("component", "relevance")),
		Drafter: usecase.NewDraftGenerator(completer, cfg.Draft.MaxRetries, cfg.Draft.InitialBackoff,
			baseLogger.With("component", "drafter")),
		Dispatcher: usecase.NewNotificationDispatcher(baseLogger.With("component", "dispatcher"), destinations...),
		Logger:     baseLogger.With("component", "pipeline"),
	})
	return a, nil
}

// Run performs a single curation pass.
func (a *Application) Run(ctx context.Context) (domain.RunReport, error) {
	return a.pipeline.Run(ctx)
}

// Watch runs the pipeline immediately and then on every scheduler interval
// until ctx is cancelled.
func (a *Application) Watch(ctx context.Context) error {
	driver := scheduler.NewTickerScheduler(a.cfg.Scheduler.Interval)
	sched := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"))

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("watching feeds", "interval", a.cfg.Scheduler.Interval, "feeds", len(a.cfg.Feeds))

	<-ctx.Done()
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}

// Dashboard serves the read-only activity log until ctx is cancelled.
func (a *Application) Dashboard(ctx context.Context) error {
	srv, err := dashboard.NewServer(a.store, a.logger.With("component", "dashboard"))
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, a.cfg.Dashboard.Addr)
}

// Close releases the seen store connection if any.
func (a *Application) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *Application) openStore(ctx context.Context) (seenStore, error) {
	switch a.cfg.SeenStore.Backend {
	case config.BackendRedis:
		store, err := storage.NewRedisStore(ctx, a.cfg.SeenStore.Redis)
		if err != nil {
			return nil, fmt.Errorf("open seen store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return storage.NewCSVStore(a.cfg.SeenStore.Path), nil
	}
}

func newExtractorRegistry(cfg config.ScrapeConfig) *extractor.Registry {
	registry := extractor.NewRegistry()
	registry.Register(scrape.NewParagraphExtractor(cfg.MaxParagraphs))
	registry.Register(scrape.ReadabilityExtractor{})
	return registry
}

func newCompleter(cfg config.LLMConfig) (ports.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI, "":
		return llm.NewOpenAIClient(cfg), nil
	case config.ProviderCohere:
		return llm.NewCohereClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
