package queue

import (
	"sync"
	"time"
)

type Status string

const (
	StatusQueued   Status = "QUEUED"
	StatusRunning  Status = "RUNNING"
	StatusFinished Status = "FINISHED"
	StatusFailed   Status = "FAILED"
	StatusStopped  Status = "STOPPED"
)

// Terminal сообщает, достигло ли задание конечного статуса.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusFailed || s == StatusStopped
}

// Job — вычислительное задание в очереди. Статус меняет только сама
// очередь от имени воркеров; диспетчер его лишь читает.
type Job struct {
	ID        string
	Op        string
	Payload   map[string]any
	Timeout   time.Duration
	CreatedAt time.Time

	mu      sync.RWMutex
	status  Status
	outcome Outcome
	errMsg  string
}

func (j *Job) Status() Status {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status
}

// Outcome возвращает результат задания: Pending, пока оно не
// завершилось, и Done со значением после StatusFinished.
func (j *Job) Outcome() Outcome {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.outcome
}

// Err возвращает сообщение об ошибке воркера для FAILED/STOPPED.
func (j *Job) Err() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.errMsg
}
