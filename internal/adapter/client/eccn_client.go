package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ClassifyRequest is the body of POST /classify
type ClassifyRequest struct {
	ProductText string `json:"product_text"`
}

// ClassifyResponse is the body returned by POST /classify.
// Optional fields decode to nil when absent.
type ClassifyResponse struct {
	EcnNumber       string   `json:"ecn_number"`
	ConfidenceScore *float64 `json:"confidence_score"`
	Reasoning       *string  `json:"reasoning"`
}

// HealthResponse is the body returned by GET /health
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// StatusError is returned when the service answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("classification service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("classification service returned status %d: %s", e.StatusCode, e.Body)
}

// ECCNClient is an HTTP client for the classification API
type ECCNClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewECCNClient creates a new classification API client
func NewECCNClient(baseURL string, timeout time.Duration) *ECCNClient {
	return &ECCNClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Classify sends one product description for classification
func (c *ECCNClient) Classify(ctx context.Context, productText string) (*ClassifyResponse, error) {
	body, err := json.Marshal(ClassifyRequest{ProductText: productText})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return decodeClassifyResponse(raw), nil
}

// decodeClassifyResponse reads the response fields leniently: a field that is
// missing or has the wrong type is left absent, and a body that is not an
// object yields an empty response.
func decodeClassifyResponse(raw json.RawMessage) *ClassifyResponse {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return &ClassifyResponse{}
	}

	var result ClassifyResponse
	var ecn string
	if json.Unmarshal(fields["ecn_number"], &ecn) == nil {
		result.EcnNumber = ecn
	}
	var score *float64
	if json.Unmarshal(fields["confidence_score"], &score) == nil {
		result.ConfidenceScore = score
	}
	var reasoning *string
	if json.Unmarshal(fields["reasoning"], &reasoning) == nil {
		result.Reasoning = reasoning
	}
	return &result
}

// Health checks the classification service health
func (c *ECCNClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &result, &StatusError{StatusCode: resp.StatusCode, Body: result.Status}
	}

	return &result, nil
}
