package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/termcore/core"
)

// TaskID identifies a spawned task
type TaskID = uuid.UUID

// TaskFunc is a unit of background work; ctx is cancelled when shutdown begins
type TaskFunc func(ctx context.Context) error

// task is one spawned unit; err is valid once done is closed
type task struct {
	id   TaskID
	done chan struct{}
	err  error
}

// ShutdownReport summarizes the fate of every task spawned during the App's life
type ShutdownReport struct {
	Completed int
	Failed    int
	Abandoned int
	Errors    []error       // One per failed task
	Elapsed   time.Duration // Time spent waiting on outstanding tasks
}

// record folds a finished task into the report
func (r *ShutdownReport) record(t *task) {
	if t.err != nil {
		r.Failed++
		r.Errors = append(r.Errors, t.err)
		return
	}
	r.Completed++
}

// Spawn runs fn on its own goroutine, tracked until shutdown
// Panics inside fn are recovered into a *core.TaskError
// Returns core.ErrShutdown once shutdown has begun
func (a *App[T]) Spawn(fn TaskFunc) (TaskID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closing {
		return uuid.Nil, core.ErrShutdown
	}

	t := &task{id: uuid.New(), done: make(chan struct{})}
	a.tasks[t.id] = t
	a.spawned.Add(1)
	go a.runTask(t, fn)
	return t.id, nil
}

func (a *App[T]) runTask(t *task, fn TaskFunc) {
	defer a.reap(t)
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("task panicked", "task", t.id, "panic", r, "stack", string(debug.Stack()))
			t.err = &core.TaskError{ID: t.id.String(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := fn(a.ctx); err != nil {
		t.err = &core.TaskError{ID: t.id.String(), Err: err}
	}
}

// reap settles a finished task
// Before shutdown the task leaves the set here; after, Shutdown owns it
func (a *App[T]) reap(t *task) {
	a.mu.Lock()
	if !a.closing {
		delete(a.tasks, t.id)
		a.finished.record(t)
		a.count(t)
	}
	a.mu.Unlock()
	close(t.done)
}

func (a *App[T]) count(t *task) {
	if t.err != nil {
		a.failed.Add(1)
		a.lastError.Store(t.err.Error())
		return
	}
	a.completed.Add(1)
}

// Shutdown stops input, cancels tasks and waits up to the shutdown timeout for them
// The timeout is one deadline shared by all tasks, not a per-task budget
// Tasks still running at the deadline are abandoned and logged, never waited on again
// Idempotent; later calls return the first report
func (a *App[T]) Shutdown() ShutdownReport {
	a.shutdownOnce.Do(func() {
		a.report = a.shutdown()
	})
	return a.report
}

func (a *App[T]) shutdown() ShutdownReport {
	a.loop.Stop()
	a.ch.Close()
	a.cancel()

	// Take the task set in one batch; Spawn and reap see closing from here on
	a.mu.Lock()
	a.closing = true
	pending := a.tasks
	a.tasks = nil
	report := a.finished
	a.mu.Unlock()

	start := time.Now()
	timer := time.NewTimer(a.opts.shutdownTimeout)
	defer timer.Stop()

	expired := false
	for id, t := range pending {
		if !expired {
			select {
			case <-t.done:
				report.record(t)
				a.count(t)
				continue
			case <-timer.C:
				expired = true
			}
		}
		// Past the deadline only already-finished tasks count
		select {
		case <-t.done:
			report.record(t)
			a.count(t)
		default:
			report.Abandoned++
			a.abandoned.Add(1)
			a.log.Warn("task abandoned at shutdown", "task", id, "timeout", a.opts.shutdownTimeout)
		}
	}
	report.Elapsed = time.Since(start)

	a.log.Info("shutdown complete",
		"completed", report.Completed,
		"failed", report.Failed,
		"abandoned", report.Abandoned,
		"elapsed", report.Elapsed)
	return report
}
