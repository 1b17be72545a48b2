package model

import "encoding/json"

// WorkItem is one unit of analysis work inside a batch. Items live only in
// memory: the queue owns an item until a worker dequeues it, and that worker
// owns it until the outcome is reported. Ownership is never shared.
type WorkItem struct {
	BatchID      string
	Index        int
	AnalysisType string
	Payload      json.RawMessage
	AttemptCount int
}
