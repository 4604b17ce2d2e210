package compute

import (
	"context"
	"errors"
	"time"

	"symcalc/internal/queue"
)

// Runner исполняет задания очереди внутри текущего процесса.
// Боевая изоляция вычислений — отдельный процесс-агент (cmd/agent);
// Runner служит локальному режиму оркестратора и тестам.
type Runner struct {
	queue    *queue.Queue
	registry *Registry
	workerID string
	idleWait time.Duration
}

func NewRunner(q *queue.Queue, reg *Registry, workerID string) *Runner {
	return &Runner{
		queue:    q,
		registry: reg,
		workerID: workerID,
		idleWait: 20 * time.Millisecond,
	}
}

// Run забирает и исполняет задания до отмены контекста.
func (r *Runner) Run(ctx context.Context) {
	for {
		job, ok := r.queue.Next(r.workerID)
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.idleWait):
			}
			continue
		}

		r.runJob(ctx, job)
	}
}

func (r *Runner) runJob(ctx context.Context, job *queue.Job) {
	fn, ok := r.registry.Lookup(job.Op)
	if !ok {
		r.queue.Fail(job.ID, "unknown computation: "+job.Op)
		return
	}

	value, err := RunWithTimeout(ctx, fn, job.Payload, job.Timeout)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		r.queue.Stop(job.ID, "calculation timeout")
	case err != nil:
		r.queue.Fail(job.ID, err.Error())
	default:
		r.queue.Complete(job.ID, value)
	}
}
