// Package upload simulates document uploads as cancellable timed tasks.
package upload

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"trustgrade-workers/internal/common/errors"
	"trustgrade-workers/internal/common/logger"
	"trustgrade-workers/internal/common/metrics"
	"trustgrade-workers/internal/models"
)

type State string

const (
	StatePending    State = "pending"
	StateInProgress State = "in-progress"
	StateDone       State = "done"
	StateCancelled  State = "cancelled"

	dateLayout = "Jan 2, 2006"
)

type Options struct {
	Tick        time.Duration
	Step        int
	VerifyDelay time.Duration
}

var DefaultOptions = Options{
	Tick:        200 * time.Millisecond,
	Step:        10,
	VerifyDelay: 2500 * time.Millisecond,
}

// Snapshot is a point-in-time copy of a task.
type Snapshot struct {
	ID         string                `json:"id"`
	Document   models.DocumentRecord `json:"document"`
	State      State                 `json:"state"`
	Percent    int                   `json:"percent"`
	StartedAt  time.Time             `json:"startedAt,omitempty"`
	FinishedAt time.Time             `json:"finishedAt,omitempty"`
}

// Task drives one document from Uploading through Processing to Verified.
type Task struct {
	mu       sync.RWMutex
	snap     Snapshot
	cause    error
	opts     Options
	cancel   context.CancelFunc
	done     chan struct{}
	logger   logger.Logger
	observer func(Snapshot)
}

func NewTask(name, category string, opts Options, log logger.Logger) *Task {
	if opts.Tick <= 0 {
		opts.Tick = DefaultOptions.Tick
	}
	if opts.Step <= 0 || opts.Step > 100 {
		opts.Step = DefaultOptions.Step
	}
	if opts.VerifyDelay < 0 {
		opts.VerifyDelay = 0
	}

	id := uuid.NewString()
	return &Task{
		snap: Snapshot{
			ID:    id,
			State: StatePending,
			Document: models.DocumentRecord{
				Name:     name,
				Category: category,
				Status:   models.DocumentUploading,
			},
		},
		opts:   opts,
		done:   make(chan struct{}),
		logger: log.WithFields(map[string]interface{}{"uploadId": id, "document": name}),
	}
}

// OnProgress registers fn to receive every state change. Call before Start.
func (t *Task) OnProgress(fn func(Snapshot)) {
	t.observer = fn
}

// Start launches the task. It fails unless the task is still pending.
func (t *Task) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.snap.State != StatePending {
		t.mu.Unlock()
		return fmt.Errorf("upload %s already %s", t.snap.ID, t.snap.State)
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.snap.State = StateInProgress
	t.snap.StartedAt = time.Now().UTC()
	t.snap.Document.Date = t.snap.StartedAt.Format(dateLayout)
	snap := t.snap
	t.mu.Unlock()

	metrics.UploadTasks.WithLabelValues(string(StateInProgress)).Inc()
	t.notify(snap)
	go t.run(ctx)
	return nil
}

// Cancel stops a running task. It is safe to call at any time.
func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		return
	}
	if t.snap.State == StatePending {
		t.snap.State = StateCancelled
		t.cause = context.Canceled
		close(t.done)
	}
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

func (t *Task) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap
}

// Wait blocks until the task finishes or ctx ends, and reports how it ended.
func (t *Task) Wait(ctx context.Context) (Snapshot, error) {
	select {
	case <-t.done:
	case <-ctx.Done():
		snap := t.Snapshot()
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return snap, errors.NewUploadTimeoutError(snap.Document.Name)
		}
		return snap, errors.NewUploadCancelledError(snap.Document.Name)
	}

	t.mu.RLock()
	snap, cause := t.snap, t.cause
	t.mu.RUnlock()

	switch {
	case snap.State == StateDone:
		return snap, nil
	case stderrors.Is(cause, context.DeadlineExceeded):
		return snap, errors.NewUploadTimeoutError(snap.Document.Name)
	default:
		return snap, errors.NewUploadCancelledError(snap.Document.Name)
	}
}

// Run starts the task and waits for it.
func (t *Task) Run(ctx context.Context) (Snapshot, error) {
	if err := t.Start(ctx); err != nil {
		return t.Snapshot(), err
	}
	return t.Wait(ctx)
}

func (t *Task) run(ctx context.Context) {
	defer close(t.done)
	defer t.cancel()

	ticker := time.NewTicker(t.opts.Tick)
	defer ticker.Stop()

	for uploaded := false; !uploaded; {
		select {
		case <-ctx.Done():
			t.finish(StateCancelled, ctx.Err())
			return
		case <-ticker.C:
			uploaded = t.step()
		}
	}

	timer := time.NewTimer(t.opts.VerifyDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		t.finish(StateCancelled, ctx.Err())
	case <-timer.C:
		t.finish(StateDone, nil)
	}
}

// step advances progress and reports whether the upload reached 100%.
func (t *Task) step() bool {
	t.mu.Lock()
	t.snap.Percent += t.opts.Step
	if t.snap.Percent >= 100 {
		t.snap.Percent = 100
		t.snap.Document.Status = models.DocumentProcessing
	}
	snap := t.snap
	t.mu.Unlock()

	t.notify(snap)
	return snap.Percent == 100
}

func (t *Task) finish(state State, cause error) {
	t.mu.Lock()
	t.snap.State = state
	t.snap.FinishedAt = time.Now().UTC()
	t.cause = cause
	if state == StateDone {
		t.snap.Document.Status = models.DocumentVerified
	}
	snap := t.snap
	t.mu.Unlock()

	metrics.UploadTasks.WithLabelValues(string(state)).Inc()
	t.logger.Info("upload finished", map[string]interface{}{
		"state":   string(state),
		"percent": snap.Percent,
		"status":  string(snap.Document.Status),
	})
	t.notify(snap)
}

func (t *Task) notify(s Snapshot) {
	if t.observer != nil {
		t.observer(s)
	}
}
