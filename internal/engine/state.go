package engine

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"patent-batch-engine/internal/model"
	"patent-batch-engine/pkg/utils"
)

// batchState is the live in-memory state of one active batch. All counter
// mutations for a batch go through st.mu, so reports for the same batch are
// serialized while different batches never contend. States are created at
// submission and reclaimed once the batch reaches a terminal status.
type batchState struct {
	mu       sync.Mutex
	job      *model.BatchJob
	reported map[int]bool // item indexes already counted, guards duplicate outcomes

	sem         chan struct{} // per-batch concurrency limiter
	maxRetries  int
	itemTimeout time.Duration

	cancelled  chan struct{}
	cancelOnce sync.Once

	lastFlush time.Time
}

func newBatchState(job *model.BatchJob, cfg Config) *batchState {
	concurrency := utils.ClampInt(
		utils.DefaultInt(job.Configuration.Concurrency, cfg.DefaultConcurrency),
		1, cfg.Workers)
	maxRetries := job.Configuration.MaxRetries
	if maxRetries <= 0 {
		maxRetries = cfg.DefaultMaxRetries
	}
	return &batchState{
		job:         job,
		reported:    make(map[int]bool),
		sem:         make(chan struct{}, concurrency),
		maxRetries:  maxRetries,
		itemTimeout: job.Configuration.ItemTimeoutDuration(cfg.DefaultItemTimeout),
		cancelled:   make(chan struct{}),
	}
}

func (st *batchState) markCancelled() {
	st.cancelOnce.Do(func() { close(st.cancelled) })
}

func (st *batchState) isCancelled() bool {
	select {
	case <-st.cancelled:
		return true
	default:
		return false
	}
}

// markRunning flips queued -> running on the first dequeue and stamps
// startedAt exactly once. Returns true on the transition.
func (st *batchState) markRunning() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.job.Status != model.StatusQueued {
		return false
	}
	st.job.Status = model.StatusRunning
	now := time.Now().UTC()
	st.job.StartedAt = &now
	return true
}

// reportSuccess records a succeeded item. Duplicate reports for an index
// already counted are no-ops, so a retry and a late original response can
// both resolve without double counting.
func (e *Engine) reportSuccess(st *batchState, index int, result json.RawMessage) {
	st.mu.Lock()
	if model.TerminalStatus(st.job.Status) || st.reported[index] {
		st.mu.Unlock()
		return
	}
	st.reported[index] = true
	st.job.CompletedItems++
	st.job.Results[index] = result
	finalized := e.afterReportLocked(st)
	st.mu.Unlock()

	if finalized {
		e.removeState(st.job.ID)
	}
}

// reportFailure records an item that exhausted its retries. The error log
// preserves report order, not item index order.
func (e *Engine) reportFailure(st *batchState, index int, itemErr error) {
	st.mu.Lock()
	if model.TerminalStatus(st.job.Status) || st.reported[index] {
		st.mu.Unlock()
		return
	}
	st.reported[index] = true
	st.job.FailedItems++
	st.job.ErrorLog = append(st.job.ErrorLog, model.ErrorLogEntry{
		ItemIndex: index,
		Message:   itemErr.Error(),
	})
	finalized := e.afterReportLocked(st)
	st.mu.Unlock()

	if finalized {
		e.removeState(st.job.ID)
	}
}

// afterReportLocked recomputes progress and the ETA, finalizes the batch if
// every item is accounted for, and otherwise schedules a throttled snapshot
// flush. Called with st.mu held; returns true when the batch went terminal.
func (e *Engine) afterReportLocked(st *batchState) bool {
	job := st.job
	job.RecomputeProgress()
	job.EstimatedCompletionTime = EstimateCompletion(job, time.Now().UTC())

	if job.Accounted() >= job.TotalItems {
		status := model.StatusCompleted
		if job.FailedItems > 0 {
			status = model.StatusFailed
		}
		e.finalizeLocked(st, status)
		return true
	}

	if e.cfg.SnapshotInterval > 0 && time.Since(st.lastFlush) >= e.cfg.SnapshotInterval {
		st.lastFlush = time.Now()
		e.flushAsync(st)
	}
	return false
}

// finalizeLocked flips the batch to its terminal status and flushes the
// snapshot while still holding st.mu, so the in-memory flag flip and the
// store write act as one step and external observers see the terminal
// state exactly once.
func (e *Engine) finalizeLocked(st *batchState, status string) {
	job := st.job
	job.Status = status
	now := time.Now().UTC()
	if job.CompletedAt == nil {
		job.CompletedAt = &now
	}
	job.EstimatedCompletionTime = nil
	job.RecomputeProgress()

	if err := e.store.Save(context.Background(), job.Snapshot()); err != nil {
		log.Printf("engine: batch %s terminal flush failed: %v", job.ID, err)
		job.ErrorLog = append(job.ErrorLog, model.ErrorLogEntry{
			ItemIndex: -1,
			Message:   "store flush failed: " + err.Error(),
		})
		if job.Status != model.StatusCancelled {
			job.Status = model.StatusFailed
		}
		if err := e.store.Save(context.Background(), job.Snapshot()); err != nil {
			log.Printf("engine: batch %s could not be persisted: %v", job.ID, err)
		}
	}
	log.Printf("engine: batch %s %s (%d completed, %d failed of %d)",
		job.ID, job.Status, job.CompletedItems, job.FailedItems, job.TotalItems)
}

// flushAsync persists a running snapshot off the worker path. These flushes
// are observability only; a failure marks the batch failed rather than
// leaving it stuck in running.
func (e *Engine) flushAsync(st *batchState) {
	snap := st.job.Snapshot()
	go func() {
		if err := e.store.Save(context.Background(), snap); err != nil {
			log.Printf("engine: batch %s snapshot flush failed: %v", snap.ID, err)
			e.failBatch(st, err)
		}
	}()
}

// failBatch marks a batch failed because of an infrastructure error, with a
// synthetic top-level error log entry. No-op if already terminal.
func (e *Engine) failBatch(st *batchState, cause error) {
	st.mu.Lock()
	if model.TerminalStatus(st.job.Status) {
		st.mu.Unlock()
		return
	}
	st.job.ErrorLog = append(st.job.ErrorLog, model.ErrorLogEntry{
		ItemIndex: -1,
		Message:   "system failure: " + cause.Error(),
	})
	e.finalizeLocked(st, model.StatusFailed)
	st.mu.Unlock()

	st.markCancelled()
	e.queue.CancelBatch(st.job.ID)
	e.removeState(st.job.ID)
}
