package queue

import (
	"container/heap"
	"context"
	"encoding/json"
	"sync"

	"patent-batch-engine/internal/model"
)

// Queue is the in-process holding area for work items awaiting a worker.
// Ordering is highest priority first, then strict FIFO within a priority
// (by enqueue sequence number, so ordering is deterministic under clock skew).
type Queue struct {
	mu     sync.Mutex
	items  entryHeap
	seq    uint64
	notify chan struct{}
}

type entry struct {
	item     *model.WorkItem
	priority int
	seq      uint64
}

func New() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Enqueue admits every item of a batch in one atomic step: a concurrent
// Dequeue either sees none of the batch's items or all of them.
func (q *Queue) Enqueue(batchID, analysisType string, items []json.RawMessage, priority int) {
	q.mu.Lock()
	for i, payload := range items {
		q.seq++
		heap.Push(&q.items, &entry{
			item: &model.WorkItem{
				BatchID:      batchID,
				Index:        i,
				AnalysisType: analysisType,
				Payload:      payload,
			},
			priority: priority,
			seq:      q.seq,
		})
	}
	q.mu.Unlock()
	q.signal()
}

// Requeue puts a single item back, keeping its batch priority. Used for
// retries after an agent failure.
func (q *Queue) Requeue(item *model.WorkItem, priority int) {
	q.mu.Lock()
	q.seq++
	heap.Push(&q.items, &entry{item: item, priority: priority, seq: q.seq})
	q.mu.Unlock()
	q.signal()
}

// Dequeue removes and returns the highest-priority, oldest item, blocking
// until one is available or ctx is cancelled.
func (q *Queue) Dequeue(ctx context.Context) (*model.WorkItem, error) {
	for {
		q.mu.Lock()
		if q.items.Len() > 0 {
			e := heap.Pop(&q.items).(*entry)
			remaining := q.items.Len()
			q.mu.Unlock()
			if remaining > 0 {
				q.signal() // wake the next waiter
			}
			return e.item, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.notify:
		}
	}
}

// CancelBatch removes every not-yet-dequeued item belonging to the batch.
// The removal is atomic with respect to concurrent dequeues: an item is
// either handed to a worker or removed here, never both.
func (q *Queue) CancelBatch(batchID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	removed := 0
	for _, e := range q.items {
		if e.item.BatchID == batchID {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed > 0 {
		q.items = kept
		heap.Init(&q.items)
	}
	return removed
}

// Len reports how many items are currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

func (q *Queue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// entryHeap orders by priority (desc), then enqueue sequence (asc).
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(*entry)) }

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
