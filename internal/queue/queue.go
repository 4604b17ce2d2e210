package queue

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrJobNotFound = errors.New("job not found")

// Queue — внутрипроцессное хранилище заданий. Оркестратор кладет
// задания через Submit, воркеры забирают их через Next и сообщают
// итог через Complete/Fail/Stop.
type Queue struct {
	mu      sync.RWMutex
	jobs    map[string]*Job
	pending []string
}

func New() *Queue {
	return &Queue{
		jobs: make(map[string]*Job),
	}
}

// Submit создает задание и ставит его в очередь. Каждое задание несет
// собственный таймаут, который воркер обязан применить к вычислению.
func (q *Queue) Submit(op string, payload map[string]any, timeout time.Duration) *Job {
	job := &Job{
		ID:        uuid.New().String(),
		Op:        op,
		Payload:   payload,
		Timeout:   timeout,
		CreatedAt: time.Now(),
		status:    StatusQueued,
		outcome:   Pending(),
	}

	q.mu.Lock()
	q.jobs[job.ID] = job
	q.pending = append(q.pending, job.ID)
	q.mu.Unlock()

	log.Printf("Задание %s (%s) поставлено в очередь", job.ID, op)
	return job
}

func (q *Queue) Get(id string) (*Job, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	job, ok := q.jobs[id]
	return job, ok
}

// Next выдает воркеру самое старое ожидающее задание и помечает его
// выполняющимся. Возвращает false, когда очередь пуста.
func (q *Queue) Next(workerID string) (*Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil, false
	}

	id := q.pending[0]
	q.pending = q.pending[1:]

	job := q.jobs[id]
	job.mu.Lock()
	job.status = StatusRunning
	job.mu.Unlock()

	log.Printf("Задание %s передано воркеру %s", id, workerID)
	return job, true
}

// Complete записывает результат задания. value может быть nil —
// это законный итог, не путать с отсутствием результата.
func (q *Queue) Complete(id string, value any) error {
	return q.finish(id, StatusFinished, Done(value), "")
}

// Fail помечает задание проваленным с сообщением воркера.
func (q *Queue) Fail(id, msg string) error {
	return q.finish(id, StatusFailed, Pending(), msg)
}

// Stop помечает задание остановленным: воркер прервал вычисление
// по собственному таймауту задания.
func (q *Queue) Stop(id, msg string) error {
	return q.finish(id, StatusStopped, Pending(), msg)
}

func (q *Queue) finish(id string, status Status, outcome Outcome, msg string) error {
	q.mu.RLock()
	job, ok := q.jobs[id]
	q.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	job.mu.Lock()
	defer job.mu.Unlock()
	if job.status.Terminal() {
		return fmt.Errorf("job %s already in terminal status %s", id, job.status)
	}

	job.status = status
	job.outcome = outcome
	job.errMsg = msg

	log.Printf("Задание %s завершено со статусом %s", id, status)
	return nil
}

// Discard удаляет задание из хранилища после того, как диспетчер
// дошел до конечной классификации.
func (q *Queue) Discard(id string) {
	q.mu.Lock()
	delete(q.jobs, id)
	q.mu.Unlock()
}

func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.jobs)
}
