package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Worker runs the asynq server that drains QueueMail.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

type WorkerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Concurrency int
	Logger      *slog.Logger
	Handler     *Handler
}

func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Handler == nil {
		return nil, errors.New("notify: worker needs a handler")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueMail: 1},
		Logger:      slogAdapter{cfg.Logger},
	})
	mux := asynq.NewServeMux()
	mux.Handle(TaskTypeSendEmail, cfg.Handler)

	return &Worker{server: srv, mux: mux, logger: cfg.Logger}, nil
}

// Run processes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- w.server.Run(w.mux) }()

	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// slogAdapter routes asynq's internal logging through slog.
type slogAdapter struct{ l *slog.Logger }

func (a slogAdapter) Debug(args ...any) { a.l.Debug(sprint(args)) }
func (a slogAdapter) Info(args ...any)  { a.l.Info(sprint(args)) }
func (a slogAdapter) Warn(args ...any)  { a.l.Warn(sprint(args)) }
func (a slogAdapter) Error(args ...any) { a.l.Error(sprint(args)) }
func (a slogAdapter) Fatal(args ...any) { a.l.Error(sprint(args)) }

func sprint(args []any) string { return fmt.Sprint(args...) }
