package model

import (
	"encoding/json"
	"math"
	"time"
)

// Batch status values. These strings are persisted and must stay stable
// across releases.
const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// TerminalStatus reports whether a status admits no further transitions.
func TerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// ErrorLogEntry records one item failure. ItemIndex is -1 for batch-level
// (system) failures.
type ErrorLogEntry struct {
	ItemIndex int    `json:"itemIndex"`
	Message   string `json:"errorMessage"`
}

// BatchJob is one batch submission and its execution snapshot.
type BatchJob struct {
	ID           string            `json:"id"`
	OwnerID      string            `json:"ownerId"`
	ProjectID    string            `json:"projectId,omitempty"`
	JobName      string            `json:"jobName"`
	JobType      string            `json:"jobType"`
	AnalysisType string            `json:"analysisType"`
	Items        []json.RawMessage `json:"items"`
	Status       string            `json:"status"`
	Priority     int               `json:"priority"`

	Progress       int `json:"progress"`
	TotalItems     int `json:"totalItems"`
	CompletedItems int `json:"completedItems"`
	FailedItems    int `json:"failedItems"`

	Results  map[int]json.RawMessage `json:"results"`
	ErrorLog []ErrorLogEntry         `json:"errorLog"`

	CreatedAt               time.Time  `json:"createdAt"`
	StartedAt               *time.Time `json:"startedAt,omitempty"`
	CompletedAt             *time.Time `json:"completedAt,omitempty"`
	EstimatedCompletionTime *time.Time `json:"estimatedCompletionTime,omitempty"`

	Configuration BatchConfiguration `json:"configuration"`
}

// RecomputeProgress derives the progress percentage from the item counters.
// Progress is never stored independently of the counts.
func (b *BatchJob) RecomputeProgress() {
	if b.TotalItems == 0 {
		b.Progress = 0
		return
	}
	done := b.CompletedItems + b.FailedItems
	b.Progress = int(math.Round(100 * float64(done) / float64(b.TotalItems)))
}

// Accounted returns how many items have reached a final outcome.
func (b *BatchJob) Accounted() int {
	return b.CompletedItems + b.FailedItems
}

// Snapshot returns a deep copy safe to hand to callers while workers keep
// mutating the original.
func (b *BatchJob) Snapshot() *BatchJob {
	c := *b
	if b.Results != nil {
		c.Results = make(map[int]json.RawMessage, len(b.Results))
		for k, v := range b.Results {
			c.Results[k] = v
		}
	}
	if b.ErrorLog != nil {
		c.ErrorLog = append([]ErrorLogEntry(nil), b.ErrorLog...)
	}
	if b.StartedAt != nil {
		t := *b.StartedAt
		c.StartedAt = &t
	}
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		c.CompletedAt = &t
	}
	if b.EstimatedCompletionTime != nil {
		t := *b.EstimatedCompletionTime
		c.EstimatedCompletionTime = &t
	}
	return &c
}
