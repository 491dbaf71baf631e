package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIPath is the fallback endpoint path, served by the same origin.
const APIPath = "/api/contact"

// APIClient posts submissions to the fallback endpoint.
type APIClient struct {
	endpoint string
	client   *http.Client
}

func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &APIClient{
		endpoint: strings.TrimRight(baseURL, "/") + APIPath,
		client:   client,
	}
}

type apiReply struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Submit sends fields as a flat JSON object. The reply is decoded whatever the
// status code, since the endpoint reports declared failures with a 500.
func (c *APIClient) Submit(ctx context.Context, fields map[string]string) (Outcome, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("contact api: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("contact api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contact api: post: %w", err)
	}
	defer resp.Body.Close()

	return decodeReply(io.LimitReader(resp.Body, 1<<20), resp.StatusCode)
}

func decodeReply(r io.Reader, status int) (Outcome, error) {
	var reply apiReply
	if err := json.NewDecoder(r).Decode(&reply); err != nil {
		return nil, fmt.Errorf("contact api: decode reply (status %d): %w", status, err)
	}
	if reply.Success == nil {
		return nil, fmt.Errorf("contact api: reply (status %d): %w", status, errors.New("missing success flag"))
	}
	if *reply.Success {
		return Success{Message: reply.Message}, nil
	}
	return Failure{Message: reply.Message}, nil
}
