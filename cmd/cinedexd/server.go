package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vmunix/cinedex/internal/api"
	"github.com/vmunix/cinedex/internal/config"
	"github.com/vmunix/cinedex/internal/enrich"
	"github.com/vmunix/cinedex/internal/indexer"
	"github.com/vmunix/cinedex/internal/library"
	"github.com/vmunix/cinedex/internal/omdb"
	"github.com/vmunix/cinedex/internal/scanner"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func runServer(configPath string) error {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return &config.ConfigError{Path: configPath, Errors: errs}
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// === Clients and services ===
	var omdbOpts []omdb.Option
	if cfg.OMDb.URL != "" {
		omdbOpts = append(omdbOpts, omdb.WithBaseURL(cfg.OMDb.URL))
	}
	omdbClient := omdb.NewClient(cfg.OMDb.APIKey, omdbOpts...)

	probe := scanner.FFprobe{}
	sc := scanner.New(cfg.Library.Root, cfg.Library.Extensions, probe,
		logger.With("component", "scanner"))

	tokens := enrich.NewTokenSet(cfg.Library.NoiseTokenList())
	svc := indexer.New(sc, omdbClient, tokens, cfg.Indexing.Concurrency,
		logger.With("component", "indexer"))

	// Shared cache; nil store puts the API in no-caching mode, where every
	// listing request pays for a full scan-and-enrich pass.
	var store library.Store
	if cfg.Cache.Enabled {
		store = library.NewMemoryStore(nil)
	}
	if cfg.Cache.Path != "" {
		logger.Warn("cache.path is accepted but unused; cache entries do not persist across restarts")
	}

	// === Background jobs ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiServer := api.New(store, svc, version, logger.With("component", "api"))
	apiServer.SetIndexContext(ctx)
	if cfg.Indexing.Auto {
		apiServer.StartIndex()
	}

	// === HTTP setup ===
	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"library", cfg.Library.Root,
		"cache", cfg.Cache.Enabled,
		"auto_index", cfg.Indexing.Auto,
		"log_level", cfg.Server.LogLevel,
	)

	srv := &http.Server{Addr: addr, Handler: api.LogRequests(mux, logger)}

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	// Cancel background jobs, then join the in-flight index run so no
	// network call outlives the process.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("index shutdown", "error", err)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
