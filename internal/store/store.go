package store

import (
	"context"
	"errors"

	"patent-batch-engine/internal/model"
)

// ErrNotFound is returned by Load when no batch job exists for the id.
var ErrNotFound = errors.New("batch job not found")

// BatchStore persists BatchJob snapshots. The engine only needs load/save
// by id; Save is an idempotent full-snapshot overwrite, used at creation,
// on every terminal transition and on throttled running snapshots.
type BatchStore interface {
	Create(ctx context.Context, job *model.BatchJob) error
	Load(ctx context.Context, id string) (*model.BatchJob, error)
	Save(ctx context.Context, job *model.BatchJob) error
	List(ctx context.Context) ([]*model.BatchJob, error)
}
