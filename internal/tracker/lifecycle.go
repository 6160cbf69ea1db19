// Package tracker implements the task lifecycle and daily reporting for stimer.
package tracker

import (
	"io"
	"log/slog"

	"github.com/fentz26/stimer/internal/clock"
	"github.com/fentz26/stimer/internal/models"
)

// TaskStore is the persistence contract the tracker relies on.
// *store.Store satisfies it.
type TaskStore interface {
	Insert(record string, start int64) error
	CloseOpen(end int64) (int64, error)
	SelectOpen() ([]models.OpenTask, error)
	SelectClosedInRange(lo, hi int64) ([]models.Task, error)
}

// Lifecycle starts, stops and reports running tasks.
//
// Start does not look for tasks that are already open, so calling Start twice
// without a Stop leaves two open rows. Stop closes every open row at the same
// instant, which also repairs that state. Callers that want strict
// one-task-at-a-time behavior should consult Status before Start.
type Lifecycle struct {
	store  TaskStore
	clock  clock.Clock
	logger *slog.Logger
}

// NewLifecycle creates a Lifecycle. A nil logger discards log output.
func NewLifecycle(s TaskStore, c clock.Clock, logger *slog.Logger) *Lifecycle {
	return &Lifecycle{
		store:  s,
		clock:  c,
		logger: orDiscard(logger),
	}
}

// Start opens a new task for record at the current instant.
func (l *Lifecycle) Start(record string) error {
	now := l.clock.Now()
	if err := l.store.Insert(record, now); err != nil {
		l.logger.Error("start task failed", "record", record, "error", err)
		return storageErr("start", err)
	}
	l.logger.Info("task started", "record", record, "start", now)
	return nil
}

// Stop closes all open tasks at the current instant and returns how many were closed.
// Having nothing to stop is not an error.
func (l *Lifecycle) Stop() (int64, error) {
	now := l.clock.Now()
	n, err := l.store.CloseOpen(now)
	if err != nil {
		l.logger.Error("stop task failed", "error", err)
		return 0, storageErr("stop", err)
	}
	if n > 1 {
		l.logger.Warn("closed more than one open task", "count", n, "end", now)
	} else {
		l.logger.Info("tasks stopped", "count", n, "end", now)
	}
	return n, nil
}

// Status returns the currently open tasks in insertion order.
func (l *Lifecycle) Status() ([]models.OpenTask, error) {
	tasks, err := l.store.SelectOpen()
	if err != nil {
		return nil, storageErr("status", err)
	}
	return tasks, nil
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
