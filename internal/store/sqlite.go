package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"patent-batch-engine/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps batch job snapshots in a sqlite database. The full job
// is stored as a JSON blob; a few columns are broken out for listing and
// filtering without decoding every snapshot.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS batch_jobs (
		id TEXT PRIMARY KEY,
		owner_id TEXT,
		job_name TEXT,
		job_type TEXT,
		analysis_type TEXT,
		status TEXT,
		priority INTEGER,
		progress INTEGER,
		total_items INTEGER,
		completed_items INTEGER,
		failed_items INTEGER,
		snapshot TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_batch_jobs_status ON batch_jobs (status);
	CREATE INDEX IF NOT EXISTS idx_batch_jobs_owner ON batch_jobs (owner_id);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, job *model.BatchJob) error {
	snapshot, err := json.Marshal(job)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO batch_jobs
		 (id, owner_id, job_name, job_type, analysis_type, status, priority,
		  progress, total_items, completed_items, failed_items, snapshot, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.OwnerID, job.JobName, job.JobType, job.AnalysisType, job.Status, job.Priority,
		job.Progress, job.TotalItems, job.CompletedItems, job.FailedItems, string(snapshot), now, now)
	return err
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (*model.BatchJob, error) {
	var snapshot string
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM batch_jobs WHERE id = ?`, id).Scan(&snapshot)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var job model.BatchJob
	if err := json.Unmarshal([]byte(snapshot), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Save overwrites the full snapshot for the job. Saving the same snapshot
// twice is a no-op, so the engine may retry freely.
func (s *SQLiteStore) Save(ctx context.Context, job *model.BatchJob) error {
	snapshot, err := json.Marshal(job)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE batch_jobs
		 SET status = ?, priority = ?, progress = ?, completed_items = ?, failed_items = ?,
		     snapshot = ?, updated_at = ?
		 WHERE id = ?`,
		job.Status, job.Priority, job.Progress, job.CompletedItems, job.FailedItems,
		string(snapshot), now, job.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*model.BatchJob, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT snapshot FROM batch_jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*model.BatchJob
	for rows.Next() {
		var snapshot string
		if err := rows.Scan(&snapshot); err != nil {
			return nil, err
		}
		var job model.BatchJob
		if err := json.Unmarshal([]byte(snapshot), &job); err != nil {
			return nil, err
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
