package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"ContentAgent/internal/app"
	"ContentAgent/internal/config"
	"ContentAgent/internal/logging"
)

type Globals struct {
	Config   string `help:"Path to the YAML config file." env:"CONTENT_AGENT_CONFIG" type:"path"`
	LogLevel string `help:"Override the configured log level (debug, info, warn, error)." name:"log-level"`
}

type cli struct {
	Globals

	Run       runCmd       `cmd:"" default:"1" help:"Process every feed once and exit."`
	Watch     watchCmd     `cmd:"" help:"Process feeds on the configured interval until interrupted."`
	Dashboard dashboardCmd `cmd:"" help:"Serve the read-only activity log."`
}

type runCmd struct{}

func (runCmd) Run(g *Globals) error {
	return withApp(g, func(ctx context.Context, a *app.Application) error {
		_, err := a.Run(ctx)
		return err
	})
}

type watchCmd struct{}

func (watchCmd) Run(g *Globals) error {
	return withApp(g, func(ctx context.Context, a *app.Application) error {
		return a.Watch(ctx)
	})
}

type dashboardCmd struct {
	Addr string `help:"Listen address, overrides dashboard.addr."`
}

func (d dashboardCmd) Run(g *Globals) error {
	return withApp(g, func(ctx context.Context, a *app.Application) error {
		return a.Dashboard(ctx)
	}, func(cfg *config.Config) {
		if d.Addr != "" {
			cfg.Dashboard.Addr = d.Addr
		}
	})
}

func withApp(g *Globals, fn func(context.Context, *app.Application) error, tweaks ...func(*config.Config)) error {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Logging.Level = g.LogLevel
	}
	for _, tweak := range tweaks {
		tweak(&cfg)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := fn(ctx, application); err != nil {
		logger.Error("application stopped", "error", err)
		return err
	}
	return nil
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("contentagent"),
		kong.Description("Autonomous content agent: curates feed articles and drafts social posts for approval."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(kctx.Run(&c.Globals))
}
