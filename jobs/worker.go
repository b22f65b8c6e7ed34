package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// WorkerConfig collects what the retention worker needs to boot.
type WorkerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Logger      *slog.Logger
	Concurrency int
	// Purge handles TaskAuditPurge; PurgeCron schedules it when non-empty.
	Purge     *AuditPurgeJob
	PurgeCron string
}

// Worker runs the asynq server and, when a cron is configured, its scheduler.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// NewWorker wires the purge handler and its cron entry.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	if cfg.Purge == nil {
		return nil, errors.New("jobs: purge job required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency:     concurrency,
		Queues:          map[string]int{QueueDefault: 1},
		ShutdownTimeout: 10 * time.Second,
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, t *asynq.Task, err error) {
			logger.Error("task failed", slog.String("task", t.Type()), slog.Any("error", err))
		}),
	})
	mux := asynq.NewServeMux()
	mux.Use(logTasks(logger))
	mux.HandleFunc(TaskAuditPurge, cfg.Purge.Handle)

	w := &Worker{server: srv, mux: mux, logger: logger}
	if cfg.PurgeCron == "" {
		return w, nil
	}
	task, err := NewAuditPurgeTask(AuditPurgePayload{})
	if err != nil {
		return nil, err
	}
	w.scheduler = asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	entry, err := w.scheduler.Register(cfg.PurgeCron, task, asynq.Queue(QueueDefault), asynq.MaxRetry(3))
	if err != nil {
		return nil, err
	}
	logger.Info("audit purge scheduled", slog.String("cron", cfg.PurgeCron), slog.String("entry", entry))
	return w, nil
}

// Run processes tasks until ctx is cancelled or the server stops.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("jobs: worker not configured")
	}
	if w.scheduler != nil {
		if err := w.scheduler.Start(); err != nil {
			return err
		}
		defer w.scheduler.Shutdown()
	}
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	<-ctx.Done()
	w.logger.Info("worker stopping")
	w.server.Shutdown()
	return ctx.Err()
}

func logTasks(logger *slog.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			started := time.Now()
			err := next.ProcessTask(ctx, t)
			logger.Debug("task processed",
				slog.String("task", t.Type()),
				slog.Duration("took", time.Since(started)),
				slog.Bool("ok", err == nil))
			return err
		})
	}
}
