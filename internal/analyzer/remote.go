package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RemoteAnalyzer calls an external classifier service over HTTP. It is used
// when the reference lookup runs as its own deployment.
type RemoteAnalyzer struct {
	baseURL string
	client  *http.Client
}

// NewRemote builds a client for the classifier at baseURL.
func NewRemote(baseURL string) *RemoteAnalyzer {
	return &RemoteAnalyzer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type analyzeRequest struct {
	ResponseText string `json:"response_text"`
	ImageID      int    `json:"image_id"`
}

// AnalyzeResponse posts the text to the remote service. Transport and
// non-2xx failures are errors; a no-match reply is a normal result.
func (r *RemoteAnalyzer) AnalyzeResponse(ctx context.Context, responseText string, imageIndex int) (Result, error) {
	body, err := json.Marshal(analyzeRequest{ResponseText: responseText, ImageID: imageIndex})
	if err != nil {
		return Result{}, fmt.Errorf("encode analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/analyze-response", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("analyzer returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode analyze response: %w", err)
	}
	return result, nil
}
