package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"patent-batch-engine/internal/engine"
	"patent-batch-engine/internal/model"
	"patent-batch-engine/internal/store"
	"patent-batch-engine/pkg/router"
)

// BatchHandler exposes the batch submission API over HTTP. All execution
// state lives in the engine; the handler only translates requests.
type BatchHandler struct {
	Engine *engine.Engine
}

func NewBatchHandler(e *engine.Engine) *BatchHandler {
	return &BatchHandler{Engine: e}
}

// SubmitBatch submits a new batch of analysis work items
// @Summary Submit a batch job
// @Description Validate and submit a batch of patent-analysis work items for concurrent execution
// @Tags batch
// @Accept json
// @Produce json
// @Param batch body model.SubmitRequest true "Batch submission"
// @Success 201 {object} model.BatchJob "Batch job created"
// @Failure 400 {object} map[string]interface{} "Invalid submission"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /batch [post]
func (h *BatchHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	job, err := h.Engine.Submit(r.Context(), req)
	if err != nil {
		if engine.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create batch job")
		return
	}

	writeJSON(w, http.StatusCreated, job)
}

// ListBatches lists all batch jobs
// @Summary List batch jobs
// @Description List every batch job with its current status and counters
// @Tags batch
// @Produce json
// @Success 200 {object} map[string]interface{} "Batch jobs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /batch [get]
func (h *BatchHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Engine.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch batch jobs")
		return
	}
	if jobs == nil {
		jobs = []*model.BatchJob{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// GetBatch retrieves one batch job snapshot
// @Summary Get batch job
// @Description Retrieve the current snapshot of a batch job
// @Tags batch
// @Produce json
// @Param id path string true "Batch job ID"
// @Success 200 {object} model.BatchJob "Batch job snapshot"
// @Failure 404 {object} map[string]interface{} "Batch job not found"
// @Router /batch/{id} [get]
func (h *BatchHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadBatch(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// CancelBatch cancels a queued or running batch job
// @Summary Cancel batch job
// @Description Cooperatively cancel a batch; queued items are dropped, in-flight items finish
// @Tags batch
// @Produce json
// @Param id path string true "Batch job ID"
// @Success 200 {object} map[string]interface{} "Cancellation acknowledged"
// @Failure 400 {object} map[string]interface{} "Batch already terminal"
// @Failure 404 {object} map[string]interface{} "Batch job not found"
// @Router /batch/{id} [delete]
func (h *BatchHandler) CancelBatch(w http.ResponseWriter, r *http.Request) {
	id := router.Param(r, "id")

	err := h.Engine.Cancel(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Batch job not found")
		return
	}
	if errors.Is(err, engine.ErrNotCancellable) {
		writeError(w, http.StatusBadRequest, "Batch job is already in a terminal state")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to cancel batch job")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Batch job cancelled",
		"id":      id,
		"status":  model.StatusCancelled,
	})
}

// GetBatchErrors retrieves the error log of a batch job
// @Summary Get batch error log
// @Description Retrieve the append-only error log of a batch job
// @Tags batch
// @Produce json
// @Param id path string true "Batch job ID"
// @Success 200 {object} map[string]interface{} "Error log"
// @Failure 404 {object} map[string]interface{} "Batch job not found"
// @Router /batch/{id}/errors [get]
func (h *BatchHandler) GetBatchErrors(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadBatch(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       job.ID,
		"errorLog": job.ErrorLog,
		"count":    len(job.ErrorLog),
	})
}

// GetBatchResults retrieves the per-item results of a batch job
// @Summary Get batch results
// @Description Retrieve analysis results for succeeded items, keyed by item index
// @Tags batch
// @Produce json
// @Param id path string true "Batch job ID"
// @Success 200 {object} map[string]interface{} "Results"
// @Failure 404 {object} map[string]interface{} "Batch job not found"
// @Router /batch/{id}/results [get]
func (h *BatchHandler) GetBatchResults(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadBatch(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      job.ID,
		"results": job.Results,
		"count":   len(job.Results),
	})
}

// GetBatchProgress retrieves the progress counters of a batch job
// @Summary Get batch progress
// @Description Retrieve progress, counters and the estimated completion time
// @Tags batch
// @Produce json
// @Param id path string true "Batch job ID"
// @Success 200 {object} map[string]interface{} "Progress"
// @Failure 404 {object} map[string]interface{} "Batch job not found"
// @Router /batch/{id}/progress [get]
func (h *BatchHandler) GetBatchProgress(w http.ResponseWriter, r *http.Request) {
	job, ok := h.loadBatch(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":                      job.ID,
		"status":                  job.Status,
		"progress":                job.Progress,
		"totalItems":              job.TotalItems,
		"completedItems":          job.CompletedItems,
		"failedItems":             job.FailedItems,
		"estimatedCompletionTime": job.EstimatedCompletionTime,
	})
}

func (h *BatchHandler) loadBatch(w http.ResponseWriter, r *http.Request) (*model.BatchJob, bool) {
	id := router.Param(r, "id")

	job, err := h.Engine.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Batch job not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch batch job")
		return nil, false
	}
	return job, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}
