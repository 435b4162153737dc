package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"admitportal-backend/internal/records"
)

const defaultTimeout = 60 * time.Second

// HTTPClient posts marksheet text to an external scoring endpoint.
type HTTPClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPClient constructs an HTTP scorer client.
func NewHTTPClient(endpoint, apiKey string) (*HTTPClient, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("scorer endpoint is required")
	}
	return &HTTPClient{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(apiKey),
		client:   &http.Client{Timeout: defaultTimeout},
	}, nil
}

// Score submits the input and decodes the confidence payload.
func (c *HTTPClient) Score(ctx context.Context, input ScoreInput) (records.AIPayload, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return records.AIPayload{}, fmt.Errorf("encode score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return records.AIPayload{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return records.AIPayload{}, fmt.Errorf("scorer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return records.AIPayload{}, fmt.Errorf("scorer status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload records.AIPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return records.AIPayload{}, fmt.Errorf("decode score response: %w", err)
	}
	return payload, nil
}

var _ Client = (*HTTPClient)(nil)
