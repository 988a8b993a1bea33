// Package backend is the HTTP client for the store backend.
// Every authenticated call takes its credentials explicitly; the client
// itself holds no per-user state and is safe for concurrent use.
package backend

import (
	"bytes"         // Request body buffer
	"context"       // Request scoped cancellation
	"encoding/json" // JSON encoding/decoding
	"fmt"           // Error wrapping
	"io"            // Body reading
	"net/http"      // HTTP client
	"net/url"       // URL building
	"strings"       // Base URL normalisation
	"time"          // Timeouts
)

// maxErrorBody caps how much of an error response is read
const maxErrorBody = 64 << 10

// Credentials supplies the bearer token for one call
type Credentials interface {
	BearerToken() string
}

// Token is a bare bearer token usable as Credentials
type Token string

// BearerToken returns the token itself
func (t Token) BearerToken() string {
	return string(t)
}

// Client talks to the store backend
type Client struct {
	baseURL    string       // e.g. https://store.example.com/api
	httpClient *http.Client // Shared transport
}

// NewClient creates a client for baseURL; a zero timeout waits indefinitely
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do sends one request and decodes a 2xx JSON answer into out (if non-nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, cred Credentials, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("backend: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Only attach a token the caller explicitly handed over
	if cred != nil {
		if token := cred.BearerToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, b)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, path, err)
	}
	return nil
}

// Message is the generic acknowledgement body
type Message struct {
	Message string `json:"message"`
}
