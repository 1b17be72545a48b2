package engine

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"patent-batch-engine/internal/model"
)

// worker is one member of the executor pool. It pulls items off the queue,
// invokes the agent with the batch's per-item timeout, and reports the
// outcome. A worker never sleeps for a retry; backoff happens through a
// delayed re-enqueue so a failing item cannot starve the pool.
func (e *Engine) worker(id int) {
	defer e.wg.Done()
	for {
		item, err := e.queue.Dequeue(e.ctx)
		if err != nil {
			return // engine shutting down
		}
		e.process(id, item)
	}
}

func (e *Engine) process(workerID int, item *model.WorkItem) {
	st := e.state(item.BatchID)
	if st == nil || st.isCancelled() {
		return
	}

	if st.markRunning() {
		st.mu.Lock()
		if e.cfg.SnapshotInterval > 0 {
			st.lastFlush = time.Now()
			e.flushAsync(st)
		}
		st.mu.Unlock()
	}

	// Per-batch concurrency slot. Other batches' items keep flowing through
	// the remaining workers while this one waits.
	select {
	case st.sem <- struct{}{}:
	case <-st.cancelled:
		return
	case <-e.ctx.Done():
		return
	}
	defer func() { <-st.sem }()

	ctx, cancel := context.WithTimeout(e.ctx, st.itemTimeout)
	result, err := e.agent.Invoke(ctx, item.AnalysisType, item.Payload)
	cancel()

	// Cooperative cancellation: checked again after the agent call so an
	// in-flight item finishes quietly instead of mutating a cancelled batch.
	if st.isCancelled() {
		return
	}

	if err != nil {
		if item.AttemptCount < st.maxRetries {
			item.AttemptCount++
			delay := e.retryDelay(item.AttemptCount)
			log.Printf("worker %d: batch %s item %d failed (attempt %d/%d), retrying in %v: %v",
				workerID, item.BatchID, item.Index, item.AttemptCount, st.maxRetries, delay, err)
			priority := st.job.Priority // immutable after submission
			time.AfterFunc(delay, func() {
				if st.isCancelled() {
					return
				}
				e.queue.Requeue(item, priority)
			})
			return
		}
		log.Printf("worker %d: batch %s item %d failed permanently after %d attempts: %v",
			workerID, item.BatchID, item.Index, item.AttemptCount+1, err)
		e.reportFailure(st, item.Index, err)
		return
	}

	e.reportSuccess(st, item.Index, result)
}

// retryDelay computes exponential backoff with jitter, capped at the
// configured maximum.
func (e *Engine) retryDelay(attempt int) time.Duration {
	delay := time.Duration(float64(e.cfg.RetryBaseDelay) * math.Pow(2, float64(attempt-1)))
	if delay > e.cfg.RetryMaxDelay {
		delay = e.cfg.RetryMaxDelay
	}
	// up to 10% jitter so retries for sibling items spread out
	jitter := time.Duration(rand.Int63n(int64(delay)/10 + 1))
	return delay + jitter
}
