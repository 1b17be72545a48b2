package model

import (
	"patent-batch-engine/pkg/utils"
	"time"
)

// BatchConfiguration is the immutable options snapshot taken at submission.
// Zero values mean "use the engine defaults".
type BatchConfiguration struct {
	Concurrency int    `json:"concurrency,omitempty"` // max parallel agent calls for this batch
	MaxRetries  int    `json:"maxRetries,omitempty"`  // extra attempts per item after the first
	ItemTimeout string `json:"itemTimeout,omitempty"` // e.g. "30s", per agent invocation
}

// ItemTimeoutDuration parses the per-item timeout, falling back to def when
// unset or malformed.
func (c BatchConfiguration) ItemTimeoutDuration(def time.Duration) time.Duration {
	if c.ItemTimeout == "" {
		return def
	}
	return utils.ParseDuration(c.ItemTimeout, def)
}
