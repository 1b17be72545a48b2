package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"patent-batch-engine/internal/api"
	"patent-batch-engine/internal/api/handler"
	"patent-batch-engine/internal/engine"
	"patent-batch-engine/internal/model"
	"patent-batch-engine/internal/store"
	"patent-batch-engine/pkg/router"
)

type stubAgent struct{}

func (stubAgent) Invoke(ctx context.Context, analysisType string, payload json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`{"summary":"ok"}`), nil
}

func newTestServer(t *testing.T) *router.Router {
	t.Helper()
	e := engine.New(engine.Config{
		Workers:        2,
		RetryBaseDelay: time.Millisecond,
	}, stubAgent{}, store.NewMemoryStore())
	e.Start()
	t.Cleanup(e.Stop)

	r := router.New()
	api.RegisterRoutes(r, handler.NewBatchHandler(e))
	return r
}

func doJSON(t *testing.T, r *router.Router, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func submission(items int) model.SubmitRequest {
	payloads := make([]json.RawMessage, items)
	for i := range payloads {
		payloads[i] = json.RawMessage(fmt.Sprintf(`{"patentNumber":"US%d"}`, i))
	}
	return model.SubmitRequest{
		OwnerID:      "user-1",
		JobName:      "api test batch",
		JobType:      "patent_analysis",
		AnalysisType: "novelty",
		Items:        payloads,
	}
}

func TestSubmitAndGetBatch(t *testing.T) {
	r := newTestServer(t)

	rec, created := doJSON(t, r, http.MethodPost, "/api/v1/batch", submission(3))
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status %d, body %s", rec.Code, rec.Body.String())
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("submit response missing id: %v", created)
	}
	if created["status"] != model.StatusQueued {
		t.Fatalf("new batch should be queued, got %v", created["status"])
	}
	if created["totalItems"] != float64(3) {
		t.Fatalf("expected totalItems 3, got %v", created["totalItems"])
	}

	rec, got := doJSON(t, r, http.MethodGet, "/api/v1/batch/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	if got["jobName"] != "api test batch" {
		t.Fatalf("get returned wrong job: %v", got)
	}
}

func TestSubmitRejectsBadPayloads(t *testing.T) {
	r := newTestServer(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/batch", bytes.NewBufferString("{not json")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed JSON: status %d, want 400", rec.Code)
	}

	bad := submission(0) // empty item list
	rec, body := doJSON(t, r, http.MethodPost, "/api/v1/batch", bad)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty items: status %d, want 400", rec.Code)
	}
	if body["error"] == nil {
		t.Fatalf("expected error message, got %v", body)
	}

	unknown := submission(1)
	unknown.AnalysisType = "tarot"
	rec, _ = doJSON(t, r, http.MethodPost, "/api/v1/batch", unknown)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown analysisType: status %d, want 400", rec.Code)
	}
}

func TestGetBatchNotFound(t *testing.T) {
	r := newTestServer(t)

	rec, _ := doJSON(t, r, http.MethodGet, "/api/v1/batch/does-not-exist", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestBatchSubResources(t *testing.T) {
	r := newTestServer(t)

	rec, created := doJSON(t, r, http.MethodPost, "/api/v1/batch", submission(2))
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status %d", rec.Code)
	}
	id := created["id"].(string)

	waitDone(t, r, id)

	rec, progress := doJSON(t, r, http.MethodGet, "/api/v1/batch/"+id+"/progress", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("progress: status %d", rec.Code)
	}
	if progress["progress"] != float64(100) || progress["status"] != model.StatusCompleted {
		t.Fatalf("unexpected progress payload: %v", progress)
	}

	rec, results := doJSON(t, r, http.MethodGet, "/api/v1/batch/"+id+"/results", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("results: status %d", rec.Code)
	}
	if results["count"] != float64(2) {
		t.Fatalf("expected 2 results, got %v", results["count"])
	}

	rec, errs := doJSON(t, r, http.MethodGet, "/api/v1/batch/"+id+"/errors", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("errors: status %d", rec.Code)
	}
	if errs["count"] != float64(0) {
		t.Fatalf("expected empty error log, got %v", errs["count"])
	}
}

func TestCancelFinishedBatch(t *testing.T) {
	r := newTestServer(t)

	rec, created := doJSON(t, r, http.MethodPost, "/api/v1/batch", submission(1))
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: status %d", rec.Code)
	}
	id := created["id"].(string)

	waitDone(t, r, id)

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/v1/batch/"+id, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("cancelling a finished batch: status %d, want 400", rec.Code)
	}

	rec, _ = doJSON(t, r, http.MethodDelete, "/api/v1/batch/ghost", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cancelling an unknown batch: status %d, want 404", rec.Code)
	}
}

func TestListBatches(t *testing.T) {
	r := newTestServer(t)

	for i := 0; i < 2; i++ {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/v1/batch", submission(1))
		if rec.Code != http.StatusCreated {
			t.Fatalf("submit %d: status %d", i, rec.Code)
		}
	}

	rec, body := doJSON(t, r, http.MethodGet, "/api/v1/batch", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	if body["count"] != float64(2) {
		t.Fatalf("expected 2 jobs, got %v", body["count"])
	}
}

func waitDone(t *testing.T, r *router.Router, id string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec, got := doJSON(t, r, http.MethodGet, "/api/v1/batch/"+id, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("get while waiting: status %d", rec.Code)
		}
		if status, _ := got["status"].(string); model.TerminalStatus(status) {
			if status != model.StatusCompleted {
				t.Fatalf("batch finished as %s", status)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("batch did not finish in time")
}
