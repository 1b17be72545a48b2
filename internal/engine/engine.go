package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"patent-batch-engine/internal/agent"
	"patent-batch-engine/internal/model"
	"patent-batch-engine/internal/queue"
	"patent-batch-engine/internal/store"
	"patent-batch-engine/pkg/utils"

	"github.com/google/uuid"
)

// Config is the immutable engine configuration, built once at startup and
// passed in explicitly.
type Config struct {
	Workers            int           // executor pool size, global ceiling on parallel agent calls
	DefaultConcurrency int           // per-batch parallelism when the submission sets none
	DefaultMaxRetries  int           // extra attempts per item after the first
	DefaultItemTimeout time.Duration // per agent invocation
	RetryBaseDelay     time.Duration // first backoff step
	RetryMaxDelay      time.Duration // backoff cap
	MaxItemsPerBatch   int           // submission ceiling
	SnapshotInterval   time.Duration // min gap between running-state store flushes, 0 disables
}

func (c Config) withDefaults() Config {
	c.Workers = utils.DefaultInt(c.Workers, 4)
	c.DefaultConcurrency = utils.DefaultInt(c.DefaultConcurrency, 2)
	if c.DefaultMaxRetries < 0 {
		c.DefaultMaxRetries = 0
	} else if c.DefaultMaxRetries == 0 {
		c.DefaultMaxRetries = 3
	}
	if c.DefaultItemTimeout <= 0 {
		c.DefaultItemTimeout = 30 * time.Second
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = 500 * time.Millisecond
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = 30 * time.Second
	}
	c.MaxItemsPerBatch = utils.DefaultInt(c.MaxItemsPerBatch, 1000)
	return c
}

// Engine accepts batch submissions, runs their items through the analysis
// agent on a fixed worker pool, and keeps BatchJob snapshots persisted.
type Engine struct {
	cfg   Config
	queue *queue.Queue
	agent agent.Agent
	store store.BatchStore

	mu      sync.Mutex
	batches map[string]*batchState

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg Config, ag agent.Agent, st store.BatchStore) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		cfg:     cfg.withDefaults(),
		queue:   queue.New(),
		agent:   ag,
		store:   st,
		batches: make(map[string]*batchState),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the executor pool.
func (e *Engine) Start() {
	log.Printf("engine: starting %d workers", e.cfg.Workers)
	for i := 0; i < e.cfg.Workers; i++ {
		e.wg.Add(1)
		go e.worker(i)
	}
}

// Stop cancels the pool and waits for workers to drain. In-flight agent
// calls finish on their own timeouts.
func (e *Engine) Stop() {
	e.cancel()
	e.wg.Wait()
	log.Printf("engine: stopped")
}

// Submit validates a batch request, persists the new job and enqueues every
// item atomically. Validation failures reject the whole submission before
// anything is enqueued; no partial batch is ever created.
func (e *Engine) Submit(ctx context.Context, req model.SubmitRequest) (*model.BatchJob, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &model.BatchJob{
		ID:            uuid.New().String(),
		OwnerID:       req.OwnerID,
		ProjectID:     req.ProjectID,
		JobName:       req.JobName,
		JobType:       req.JobType,
		AnalysisType:  req.AnalysisType,
		Items:         req.Items,
		Status:        model.StatusQueued,
		Priority:      utils.DefaultInt(req.Priority, 1),
		TotalItems:    len(req.Items),
		Results:       make(map[int]json.RawMessage),
		ErrorLog:      []model.ErrorLogEntry{},
		CreatedAt:     now,
		Configuration: req.Configuration,
	}

	if err := e.store.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to persist batch job: %w", err)
	}

	st := newBatchState(job, e.cfg)

	e.mu.Lock()
	e.batches[job.ID] = st
	e.mu.Unlock()

	e.queue.Enqueue(job.ID, job.AnalysisType, job.Items, job.Priority)
	log.Printf("engine: batch %s queued (%d items, priority %d)", job.ID, job.TotalItems, job.Priority)

	return job.Snapshot(), nil
}

func (e *Engine) validate(req model.SubmitRequest) error {
	if req.OwnerID == "" {
		return newValidationError("ownerId is required")
	}
	if req.JobName == "" || len(req.JobName) > 255 {
		return newValidationError("jobName must be between 1 and 255 characters")
	}
	if req.JobType == "" {
		return newValidationError("jobType is required")
	}
	if !agent.KnownType(req.AnalysisType) {
		return newValidationError(fmt.Sprintf("unknown analysisType: %q", req.AnalysisType))
	}
	if len(req.Items) == 0 {
		return newValidationError("at least one item is required")
	}
	if len(req.Items) > e.cfg.MaxItemsPerBatch {
		return newValidationError(fmt.Sprintf("too many items: %d (max %d)", len(req.Items), e.cfg.MaxItemsPerBatch))
	}
	return nil
}

// Get returns the current snapshot of a batch job. Active batches are
// served from memory, finished ones from the store.
func (e *Engine) Get(ctx context.Context, id string) (*model.BatchJob, error) {
	if st := e.state(id); st != nil {
		st.mu.Lock()
		defer st.mu.Unlock()
		return st.job.Snapshot(), nil
	}
	return e.store.Load(ctx, id)
}

// List returns all batch jobs, with active ones reflecting live in-memory
// progress rather than the last persisted snapshot.
func (e *Engine) List(ctx context.Context) ([]*model.BatchJob, error) {
	jobs, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i, job := range jobs {
		if st := e.state(job.ID); st != nil {
			st.mu.Lock()
			jobs[i] = st.job.Snapshot()
			st.mu.Unlock()
		}
	}
	return jobs, nil
}

// Cancel requests cooperative cancellation of a batch. Queued items are
// removed immediately; in-flight agent calls are allowed to finish but their
// outcomes are discarded.
func (e *Engine) Cancel(ctx context.Context, id string) error {
	st := e.state(id)
	if st == nil {
		job, err := e.store.Load(ctx, id)
		if err != nil {
			return err
		}
		if model.TerminalStatus(job.Status) {
			return ErrNotCancellable
		}
		// Known to the store but not the engine: a stale running record
		// from a previous process. Mark it cancelled directly.
		job.Status = model.StatusCancelled
		now := time.Now().UTC()
		job.CompletedAt = &now
		job.EstimatedCompletionTime = nil
		return e.store.Save(ctx, job)
	}

	st.markCancelled()
	removed := e.queue.CancelBatch(id)

	st.mu.Lock()
	if model.TerminalStatus(st.job.Status) {
		st.mu.Unlock()
		return ErrNotCancellable
	}
	e.finalizeLocked(st, model.StatusCancelled)
	st.mu.Unlock()

	e.removeState(id)
	log.Printf("engine: batch %s cancelled (%d queued items dropped)", id, removed)
	return nil
}

func (e *Engine) state(id string) *batchState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.batches[id]
}

func (e *Engine) removeState(id string) {
	e.mu.Lock()
	delete(e.batches, id)
	e.mu.Unlock()
}
