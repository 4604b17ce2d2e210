package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"symcalc/internal/config"
	"symcalc/internal/queue"
)

var (
	// ErrCalculationFailed — воркер сообщил об ошибке или остановке.
	ErrCalculationFailed = errors.New("calculation failed")
	// ErrTimeoutExpired — общий дедлайн ожидания истек без конечного статуса.
	ErrTimeoutExpired = errors.New("calculation timeout expired")
)

// RetryPolicy управляет циклом опроса статуса. Принадлежит одному
// вызову Calculate, между вызовами не разделяется.
type RetryPolicy struct {
	InitialWait  time.Duration
	GrowthFactor float64
	MaxWait      time.Duration
	Deadline     time.Duration
}

func DefaultPolicy() RetryPolicy {
	return RetryPolicy{
		InitialWait:  20 * time.Millisecond,
		GrowthFactor: 1.4,
		MaxWait:      time.Second,
		Deadline:     config.DefaultJobQueueTimeout,
	}
}

// Dispatcher отдает вычисление изолированному воркеру и синхронно
// ждет итога. Сам он воркера не останавливает: жесткий обрыв
// вычисления обеспечивает только собственный таймаут задания,
// поэтому Deadline имеет смысл держать не меньше CalcTimeout.
type Dispatcher struct {
	queue       *queue.Queue
	policy      RetryPolicy
	calcTimeout time.Duration
}

func New(q *queue.Queue, policy RetryPolicy, calcTimeout time.Duration) *Dispatcher {
	def := DefaultPolicy()
	if policy.InitialWait <= 0 {
		policy.InitialWait = def.InitialWait
	}
	if policy.GrowthFactor <= 1 {
		policy.GrowthFactor = def.GrowthFactor
	}
	if policy.MaxWait <= 0 {
		policy.MaxWait = def.MaxWait
	}
	if policy.Deadline <= 0 {
		policy.Deadline = def.Deadline
	}
	if calcTimeout <= 0 {
		calcTimeout = config.DefaultCalculationTimeout
	}
	return &Dispatcher{queue: q, policy: policy, calcTimeout: calcTimeout}
}

// FromConfig собирает диспетчер с таймаутами из конфигурации.
func FromConfig(q *queue.Queue, cfg *config.Config) *Dispatcher {
	policy := DefaultPolicy()
	policy.Deadline = cfg.JobQueueTimeout
	return New(q, policy, cfg.CalculationTimeout)
}

// Calculate отправляет именованное вычисление в очередь и блокирует
// вызывающего до итога. Повторяется только опрос статуса; сама
// отправка при неудаче не повторяется. Результатом может быть nil —
// это завершенное вычисление, а не отсутствие ответа.
func (d *Dispatcher) Calculate(ctx context.Context, op string, payload map[string]any) (any, error) {
	job := d.queue.Submit(op, payload, d.calcTimeout)
	defer d.queue.Discard(job.ID)

	deadline := time.Now().Add(d.policy.Deadline)
	wait := d.policy.InitialWait

	for {
		if out := job.Outcome(); out.IsDone() {
			return out.Value(), nil
		}
		switch st := job.Status(); st {
		case queue.StatusFailed, queue.StatusStopped:
			return nil, fmt.Errorf("%w: job %s: %s (%s)", ErrCalculationFailed, job.ID, job.Err(), st)
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w: job %s after %s", ErrTimeoutExpired, job.ID, d.policy.Deadline)
		}

		sleep := wait
		if sleep > remaining {
			sleep = remaining
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}

		wait = time.Duration(float64(wait) * d.policy.GrowthFactor)
		if wait > d.policy.MaxWait {
			wait = d.policy.MaxWait
		}
	}
}
