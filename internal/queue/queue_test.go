package queue

import (
	"testing"
	"time"
)

func TestSubmitAndNext(t *testing.T) {
	q := New()

	job1 := q.Submit("evaluate", map[string]any{"expression": "1+1"}, time.Second)
	job2 := q.Submit("evaluate", map[string]any{"expression": "2+2"}, time.Second)

	if job1.Status() != StatusQueued {
		t.Errorf("статус после Submit = %s, want %s", job1.Status(), StatusQueued)
	}
	if job1.Outcome().IsDone() {
		t.Error("результат нового задания должен быть Pending")
	}

	// Воркеры получают задания в порядке постановки
	got1, ok := q.Next("worker-1")
	if !ok || got1.ID != job1.ID {
		t.Fatalf("Next() = %v, want задание %s", got1, job1.ID)
	}
	if got1.Status() != StatusRunning {
		t.Errorf("статус после Next = %s, want %s", got1.Status(), StatusRunning)
	}

	got2, ok := q.Next("worker-2")
	if !ok || got2.ID != job2.ID {
		t.Fatalf("Next() = %v, want задание %s", got2, job2.ID)
	}

	if _, ok := q.Next("worker-3"); ok {
		t.Error("Next() на пустой очереди должен вернуть false")
	}
}

func TestCompleteWithNilValue(t *testing.T) {
	q := New()
	job := q.Submit("noop", nil, time.Second)
	q.Next("worker-1")

	if err := q.Complete(job.ID, nil); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if job.Status() != StatusFinished {
		t.Errorf("статус = %s, want %s", job.Status(), StatusFinished)
	}

	// Законный nil-результат не путается с отсутствием результата
	out := job.Outcome()
	if !out.IsDone() {
		t.Fatal("Outcome после Complete должен быть Done")
	}
	if out.Value() != nil {
		t.Errorf("Value() = %v, want nil", out.Value())
	}
}

func TestFailAndStop(t *testing.T) {
	q := New()

	failed := q.Submit("noop", nil, time.Second)
	q.Next("worker-1")
	if err := q.Fail(failed.ID, "boom"); err != nil {
		t.Fatalf("Fail() error = %v", err)
	}
	if failed.Status() != StatusFailed || failed.Err() != "boom" {
		t.Errorf("после Fail: статус=%s, err=%q", failed.Status(), failed.Err())
	}
	if failed.Outcome().IsDone() {
		t.Error("проваленное задание не должно иметь результата")
	}

	stopped := q.Submit("noop", nil, time.Second)
	q.Next("worker-1")
	if err := q.Stop(stopped.ID, "calculation timeout"); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if stopped.Status() != StatusStopped {
		t.Errorf("после Stop: статус=%s, want %s", stopped.Status(), StatusStopped)
	}
}

func TestTerminalStatusIsFinal(t *testing.T) {
	q := New()
	job := q.Submit("noop", nil, time.Second)
	q.Next("worker-1")

	if err := q.Complete(job.ID, 42.0); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if err := q.Fail(job.ID, "late failure"); err == nil {
		t.Error("повторный переход из конечного статуса должен вернуть ошибку")
	}
	if job.Status() != StatusFinished {
		t.Errorf("статус изменился после конечного: %s", job.Status())
	}
}

func TestUnknownJob(t *testing.T) {
	q := New()
	if err := q.Complete("no-such-job", nil); err == nil {
		t.Error("Complete() неизвестного задания должен вернуть ошибку")
	}
}

func TestDiscard(t *testing.T) {
	q := New()
	job := q.Submit("noop", nil, time.Second)

	q.Discard(job.ID)
	if _, ok := q.Get(job.ID); ok {
		t.Error("задание должно быть удалено из хранилища")
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusFinished, StatusFailed, StatusStopped} {
		if !s.Terminal() {
			t.Errorf("%s должен быть конечным", s)
		}
	}
	for _, s := range []Status{StatusQueued, StatusRunning} {
		if s.Terminal() {
			t.Errorf("%s не должен быть конечным", s)
		}
	}
}
