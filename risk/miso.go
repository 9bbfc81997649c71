package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bidcond-backend/models"
)

// MisoAnalyzer calls the MISO workflow endpoint. There is no automatic retry:
// a failed call is surfaced as a retryable error state to the user.
type MisoAnalyzer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewMisoAnalyzer creates an analyzer for the given workflow endpoint
func NewMisoAnalyzer(endpoint, apiKey string) *MisoAnalyzer {
	return &MisoAnalyzer{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type misoRequest struct {
	InputText string `json:"input_text"`
}

type misoResponse struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// Analyze submits the text and derives a verdict from the free-text result
func (a *MisoAnalyzer) Analyze(ctx context.Context, text string) (*models.RiskVerdict, error) {
	body, err := json.Marshal(misoRequest{InputText: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("risk analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read risk analysis response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// An error body may be a gateway HTML page rather than JSON
		var apiResp misoResponse
		if err := json.Unmarshal(raw, &apiResp); err == nil && apiResp.Error != "" {
			return nil, fmt.Errorf("risk analysis API error: %s", apiResp.Error)
		}
		return nil, fmt.Errorf("risk analysis API error: %d", resp.StatusCode)
	}

	var apiResp misoResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode risk analysis response: %w", err)
	}

	return VerdictFromResult(apiResp.Result), nil
}
