// Package client talks to the lecture API and tracks one user's request state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"kids-lecture/api/internal/lecture"
)

// FallbackMessage is shown when the server gives no usable message.
const FallbackMessage = "Failed to generate lecture. Please try again."

const generatePath = "/api/lectures/generate"

// APIError is a non-2xx answer from the lecture API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, http.StatusText(e.Status))
}

// Client issues lecture requests. It keeps no state between calls.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New returns a client for baseURL. A nil httpc uses http.DefaultClient, so no
// timeout beyond the caller's context applies.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

func (c *Client) Generate(ctx context.Context, topic, grade string) (lecture.Lecture, error) {
	payload, err := json.Marshal(lecture.Request{Topic: topic, Grade: grade})
	if err != nil {
		return lecture.Lecture{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return lecture.Lecture{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return lecture.Lecture{}, fmt.Errorf("lecture api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return lecture.Lecture{}, fmt.Errorf("lecture api: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &msg)
		return lecture.Lecture{}, &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(msg.Message)}
	}

	var out lecture.Lecture
	if err := json.Unmarshal(body, &out); err != nil {
		return lecture.Lecture{}, fmt.Errorf("lecture api: bad JSON: %w", err)
	}
	return out, nil
}
