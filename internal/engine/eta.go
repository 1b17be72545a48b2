package engine

import (
	"time"

	"patent-batch-engine/internal/model"
)

// EstimateCompletion extrapolates the completion time of a running batch
// from throughput observed so far:
//
//	startedAt + (now - startedAt) * totalItems / accountedItems
//
// It returns nil until the first item is accounted for; extrapolating from
// zero throughput would be meaningless. Estimates are recomputed on every
// progress report, never on a timer, so they are exactly as fresh as the
// counters.
func EstimateCompletion(job *model.BatchJob, now time.Time) *time.Time {
	if job.StartedAt == nil || job.TotalItems <= 0 {
		return nil
	}
	done := job.Accounted()
	if done <= 0 {
		return nil
	}
	elapsed := now.Sub(*job.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	est := job.StartedAt.Add(time.Duration(float64(elapsed) * float64(job.TotalItems) / float64(done)))
	return &est
}
