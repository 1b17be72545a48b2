package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPAgent invokes a remote analysis agent service over HTTP. The service
// exposes a single POST /agents/analyze endpoint.
type HTTPAgent struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPAgent(baseURL string) *HTTPAgent {
	return &HTTPAgent{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Minute},
	}
}

type analyzeRequest struct {
	AnalysisType string          `json:"analysisType"`
	InputData    json.RawMessage `json:"inputData"`
}

type analyzeResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error,omitempty"`
}

func (a *HTTPAgent) Invoke(ctx context.Context, analysisType string, payload json.RawMessage) (json.RawMessage, error) {
	data, err := json.Marshal(analyzeRequest{AnalysisType: analysisType, InputData: payload})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/agents/analyze", a.BaseURL), bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("agent error (status %d): %s", resp.StatusCode, string(body))
	}

	var res analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, fmt.Errorf("agent failed: %s", res.Error)
	}

	return res.Result, nil
}
