package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/sporters/courtside/internal/analysis"
	"github.com/sporters/courtside/internal/api"
	"github.com/sporters/courtside/internal/config"
	"github.com/sporters/courtside/internal/database"
	"github.com/sporters/courtside/internal/history"
	"github.com/sporters/courtside/internal/market"
	"github.com/sporters/courtside/internal/poller"
	"github.com/sporters/courtside/internal/server"
	"github.com/sporters/courtside/internal/store"
	"github.com/sporters/courtside/internal/version"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "configs/courtside.yaml", "path to config file")
	flag.Parse()

	// .env is optional; config files reference its variables via ${VAR}.
	_ = godotenv.Load()

	// Bootstrap logger until the configured level is known.
	logger := newLogger(slog.LevelInfo)
	slog.SetDefault(logger)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = newLogger(parseLevel(cfg.Log.Level))
	slog.SetDefault(logger)

	logger.Info("starting courtside",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	apiClient := api.NewClient(
		cfg.API.RestURL,
		cfg.API.APIKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, time.Second),
		api.WithRateLimit(cfg.API.RateLimitPerSecond),
	)

	st := store.New(logger)
	feed := market.NewFeed(apiClient, cfg.Feed.SeriesTicker, cfg.Feed.Status, cfg.Feed.Limit, logger)

	// Snapshot history is optional; the browsing surface never depends
	// on it.
	var histWriter *history.Writer
	if cfg.History.Enabled {
		logger.Info("connecting to database",
			"host", cfg.Database.Host,
			"port", cfg.Database.Port,
			"database", cfg.Database.Name,
		)

		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		histWriter = history.NewWriter(history.WriterConfig{
			BatchSize:     cfg.History.BatchSize,
			FlushInterval: cfg.History.FlushInterval,
			BufferSize:    cfg.History.BufferSize,
		}, pool, logger)

		if err := histWriter.Start(ctx); err != nil {
			logger.Error("failed to start history writer", "error", err)
			os.Exit(1)
		}
	}

	var recorder poller.Recorder
	if histWriter != nil {
		recorder = histWriter
	}

	poll := poller.New(cfg.Feed.Interval, feed, st, recorder, logger)
	if err := poll.Start(ctx); err != nil {
		logger.Error("failed to start poller", "error", err)
		os.Exit(1)
	}

	analyzer := analysis.NewClient(
		cfg.Analysis.URL,
		cfg.Analysis.APIKey,
		cfg.Analysis.Model,
		analysis.WithLogger(logger),
		analysis.WithTimeout(cfg.Analysis.Timeout),
	)
	if cfg.Analysis.APIKey == "" {
		logger.Warn("analysis api key is not configured, /api/v1/analyze will report errors")
	}

	srv := server.New(cfg.Server, cfg.Feed, st, apiClient, analyzer, logger)
	if err := srv.Start(ctx); err != nil {
		logger.Error("failed to start http server", "error", err)
		os.Exit(1)
	}

	logger.Info("courtside running",
		"addr", cfg.Server.BindAddress,
		"series", cfg.Feed.SeriesTicker,
		"interval", cfg.Feed.Interval,
		"history", cfg.History.Enabled,
	)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// The poller feeds everything else, so it stops first. The server and
	// the writer drain independently.
	if err := poll.Stop(shutdownCtx); err != nil {
		logger.Warn("poller shutdown", "error", err)
	}

	var g errgroup.Group
	g.Go(func() error { return srv.Stop(shutdownCtx) })
	if histWriter != nil {
		g.Go(func() error { return histWriter.Stop(shutdownCtx) })
	}
	if err := g.Wait(); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}

	logger.Info("courtside stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
