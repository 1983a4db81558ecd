package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Worker wraps the Asynq server processing background tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// JobRecorder receives the outcome of every processed task, e.g. to feed a
// metrics counter. status is "ok" or "error".
type JobRecorder func(taskType, status string)

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Logger      *slog.Logger
	Concurrency int
	Recorder    JobRecorder
}

// NewWorker constructs a Worker instance with the webhook deliverer mounted.
func NewWorker(cfg WorkerConfig) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeWebhook, recorded(TaskTypeWebhook, cfg.Recorder, NewWebhookDeliverer().HandleWebhookTask))
	return &Worker{server: srv, mux: mux, logger: cfg.Logger}
}

func recorded(taskType string, rec JobRecorder, h func(context.Context, *asynq.Task) error) func(context.Context, *asynq.Task) error {
	if rec == nil {
		return h
	}
	return func(ctx context.Context, t *asynq.Task) error {
		err := h(ctx, t)
		status := "ok"
		if err != nil {
			status = "error"
		}
		rec(taskType, status)
		return err
	}
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
