// Command warden-worker delivers the e-mail that warden queues in redis.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/aussiebroadwan/warden/internal/rbac/app"
	"github.com/aussiebroadwan/warden/internal/rbac/notify"
	"github.com/aussiebroadwan/warden/pkg/slogx"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.RedisAddr == "" {
		log.Fatal("WARDEN_REDIS_ADDR is required by the worker")
	}

	logger := slogx.New(slogx.Config{
		Service: "warden-worker",
		Version: app.BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	renderer, err := notify.NewRenderer()
	if err != nil {
		log.Fatalf("failed to load mail templates: %v", err)
	}

	worker, err := notify.NewWorker(notify.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Concurrency: cfg.WorkerConcurrency,
		Logger:      logger,
		Handler: &notify.Handler{
			Renderer:  renderer,
			Deliverer: cfg.Deliverer(logger),
			Logger:    logger,
		},
	})
	if err != nil {
		log.Fatalf("failed to create worker: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("warden worker starting", slog.String("redis", cfg.RedisAddr), slog.Int("concurrency", cfg.WorkerConcurrency))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("warden worker stopped")
}
