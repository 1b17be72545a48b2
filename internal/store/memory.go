package store

import (
	"context"
	"sort"
	"sync"

	"patent-batch-engine/internal/model"
)

// MemoryStore is a map-backed BatchStore. Snapshots survive only for the
// process lifetime; used in tests and single-process demo setups.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*model.BatchJob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*model.BatchJob)}
}

func (s *MemoryStore) Create(ctx context.Context, job *model.BatchJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job.Snapshot()
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*model.BatchJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return job.Snapshot(), nil
}

func (s *MemoryStore) Save(ctx context.Context, job *model.BatchJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		return ErrNotFound
	}
	s.jobs[job.ID] = job.Snapshot()
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*model.BatchJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]*model.BatchJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job.Snapshot())
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}
