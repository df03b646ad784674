package postmark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const defaultBaseURL = "https://api.postmarkapp.com"

// Client talks to the Postmark API. The zero value is not usable; create one
// with New.
type Client struct {
	httpClient *http.Client
	config     Config
	baseURL    string
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
// Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the API base URL. Intended for tests against a local
// httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// New creates a Postmark API client. An empty server token falls back to
// TestServerToken, so a zero Config yields a client that exercises the API
// without delivering mail.
func New(cfg Config, opts ...Option) *Client {
	if cfg.ServerToken == "" {
		cfg.ServerToken = TestServerToken
	}

	c := &Client{
		httpClient: http.DefaultClient,
		config:     cfg,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendEmail submits a single message to the /email endpoint.
func (c *Client) SendEmail(ctx context.Context, msg *Message) (*Response, error) {
	var resp Response
	if err := c.post(ctx, "/email", msg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendBatch submits up to MaxBatchSize messages to the /email/batch endpoint
// in a single request. The returned slice holds one Response per submitted
// message, in order; check each ErrorCode for per-message rejections.
func (c *Client) SendBatch(ctx context.Context, msgs []*Message) ([]Response, error) {
	if len(msgs) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d messages", ErrBatchTooLarge, len(msgs))
	}

	var resp []Response
	if err := c.post(ctx, "/email/batch", msgs, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// post performs one JSON round trip. payload is marshaled as the request
// body; out receives the decoded 200 response.
func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("postmark: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("postmark: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.config.ServerToken)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrTransport, err)
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: res.StatusCode}
		// Best effort decode: the status alone is enough to report failure.
		_ = json.NewDecoder(res.Body).Decode(apiErr)
		return apiErr
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("postmark: failed to decode response: %w", err)
	}
	return nil
}
