// Package apiclient is the typed HTTP client for the remote blog API, the
// only persistence layer this application talks to. Each method decodes the
// response into an explicit schema and fails with a ValidationError if the
// body does not fit, so an ill-shaped object never reaches a view.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultTimeout bounds every API call at the transport level.
const defaultTimeout = 30 * time.Second

// Client talks to the blog API. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the API at baseURL (e.g. "https://host:7862/api").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

// apiError is the error body shape the API uses for rejections. Some
// endpoints say "error", others "message"; accept both.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs one HTTP round trip. body (if non-nil) is sent as JSON; the
// response is decoded into out (if non-nil). Failures map onto the
// package's four error types.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api marshal: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			return &ValidationError{Message: "The server returned an unexpected response."}
		}
		return nil
	}

	msg := serverMessage(respBody)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = "You are not allowed to perform this action."
		}
		return &AuthorizationError{Message: msg}
	case http.StatusNotFound:
		return &NotFoundError{Resource: "resource"}
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		if msg == "" {
			msg = "The server rejected the submitted data."
		}
		return &ValidationError{Message: msg}
	default:
		return &TransportError{Err: fmt.Errorf("api status %d: %s", resp.StatusCode, msg)}
	}
}

// serverMessage extracts the human-readable message from an error body.
func serverMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// queryPath builds a path with URL-encoded query parameters.
func queryPath(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
