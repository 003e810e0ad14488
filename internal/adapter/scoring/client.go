// Package scoring is the HTTP client for the external risk-score
// provider. The model is a black box to the engine: one request per
// loan origination, an integer score back.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type scoreRequest struct {
	BorrowerID  string            `json:"borrower_id"`
	FarmContext map[string]string `json:"farm_context,omitempty"`
}

type scoreResponse struct {
	Score int `json:"score"`
}

func (c *Client) GetScore(ctx context.Context, borrowerID string, farmContext map[string]string) (int, error) {
	payload, err := json.Marshal(scoreRequest{BorrowerID: borrowerID, FarmContext: farmContext})
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scores", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scoring provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scoring provider: unexpected status %d", resp.StatusCode)
	}
	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("scoring provider: decode: %w", err)
	}
	if out.Score < 0 || out.Score > 1000 {
		return 0, fmt.Errorf("scoring provider: score %d out of range", out.Score)
	}
	return out.Score, nil
}
