package store

import (
	"context"
	"encoding/json"
	"fmt"

	"patent-batch-engine/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps batch job snapshots in Redis, one JSON value per job
// plus a set of known ids for listing. Suited to deployments where several
// API replicas need to read snapshots written by the engine instance.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "batchjob"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":ids"
}

func (s *RedisStore) Create(ctx context.Context, job *model.BatchJob) error {
	if err := s.Save(ctx, job); err != nil {
		return err
	}
	return s.client.SAdd(ctx, s.indexKey(), job.ID).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) (*model.BatchJob, error) {
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var job model.BatchJob
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *RedisStore) Save(ctx context.Context, job *model.BatchJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(job.ID), data, 0).Err()
}

func (s *RedisStore) List(ctx context.Context) ([]*model.BatchJob, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}

	var jobs []*model.BatchJob
	for _, id := range ids {
		job, err := s.Load(ctx, id)
		if err == ErrNotFound {
			continue // id set and value can drift if a key expires
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
