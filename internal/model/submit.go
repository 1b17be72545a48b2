package model

import "encoding/json"

// SubmitRequest is the payload for POST /api/v1/batch.
type SubmitRequest struct {
	OwnerID       string             `json:"ownerId"`
	ProjectID     string             `json:"projectId,omitempty"`
	JobName       string             `json:"jobName"`
	JobType       string             `json:"jobType"`
	AnalysisType  string             `json:"analysisType"`
	Items         []json.RawMessage  `json:"items"`
	Priority      int                `json:"priority,omitempty"`
	Configuration BatchConfiguration `json:"configuration,omitempty"`
}
