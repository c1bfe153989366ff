package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"videocanvas/api-gateway/models"
)

// SubmitResponse is the render API's answer to a job submission.
type SubmitResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StatusResponse is one status snapshot for an in-flight render. Progress is
// reported as a 0.0-1.0 fraction by the API.
type StatusResponse struct {
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	URL      string  `json:"url,omitempty"`
}

// Client talks to the external render API over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates a render API client. An empty apiKey is legal at
// construction time; calls fail with models.ErrConfiguration instead.
func NewClient(baseURL, apiKey string, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}
}

// Submit sends one job description to the render API. It is called exactly
// once per user export; the caller reports failures instead of retrying.
func (c *Client) Submit(ctx context.Context, edit Edit) (SubmitResponse, error) {
	var out SubmitResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, "/render", edit, &out); err != nil {
		return SubmitResponse{}, err
	}
	if out.ID == "" {
		return SubmitResponse{}, fmt.Errorf("%w: render API returned no job id", models.ErrServiceUnavailable)
	}
	return out, nil
}

// GetStatus fetches the current status of a previously submitted job.
func (c *Client) GetStatus(ctx context.Context, externalJobID string) (StatusResponse, error) {
	var out StatusResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/render/"+externalJobID, nil, &out); err != nil {
		return StatusResponse{}, err
	}
	return out, nil
}

// doJSONRequest performs a JSON request against the render API, handling
// credential checks, marshaling, and response decoding.
func (c *Client) doJSONRequest(ctx context.Context, method, path string, payload, result interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: render API key is not configured", models.ErrConfiguration)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: render API request failed: %v", models.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		c.log.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"path":        path,
		}).Warn("Render API returned an error")
		return fmt.Errorf("%w: render API returned %d: %s", models.ErrServiceUnavailable, resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode render API response: %v", models.ErrServiceUnavailable, err)
		}
	}
	return nil
}
