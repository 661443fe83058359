// Command assetd serves texture and sound metadata from a bounded resource
// cache, reading asset bytes from a directory or from Redis.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bjaus/rescache"
	promadapter "github.com/bjaus/rescache/adapters/prometheus"
	"github.com/bjaus/rescache/internal/config"
	"github.com/bjaus/rescache/internal/logger"
	"github.com/bjaus/rescache/internal/server"
	"github.com/bjaus/rescache/loader"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "assetd:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log, err := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(slog.String("service", "assetd")),
	)
	if err != nil {
		return err
	}

	src, cleanup, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cache, err := rescache.New(cfg.Capacity,
		loader.New(src, loader.WithLogger(log), loader.WithMaxSize(cfg.MaxAssetSize)),
		rescache.WithLogger(log),
		rescache.WithMetrics(promadapter.NewCacheMetrics(reg)),
		rescache.WithPreloadConcurrency(cfg.PreloadConcurrency),
	)
	if err != nil {
		return err
	}

	if len(cfg.Preload) > 0 {
		if err := cache.Preload(ctx, cfg.Preload...); err != nil {
			log.WarnContext(ctx, "preload incomplete", "error", err)
		}
		log.InfoContext(ctx, "preloaded assets", "entries", cache.Len())
	}

	handler := server.New(cache, log, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "listening",
			"addr", cfg.HTTPAddr,
			"source", string(cfg.Source),
			"capacity", cfg.Capacity,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	cache.Clear()
	return nil
}

func newSource(ctx context.Context, cfg config.Config) (loader.Source, func(), error) {
	switch cfg.Source {
	case config.SourceRedis:
		client, err := loader.ConnectRedis(ctx, loader.RedisConfig{
			URL:            cfg.RedisURL,
			RetryAttempts:  cfg.RedisRetryAttempts,
			RetryInterval:  cfg.RedisRetryInterval,
			ConnectTimeout: cfg.RedisTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return loader.NewRedisSource(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	default:
		return loader.NewFSSource(os.DirFS(cfg.AssetRoot)), func() {}, nil
	}
}
