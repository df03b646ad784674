package trebuchet

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// Option configures the client.
type Option func(*Client)

// WithLogger sets the client logger.
// Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient replaces the HTTP client used by the default dispatcher.
// Ignored when WithDispatcher is also given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithDispatcher replaces the default Postmark dispatcher. Useful for tests
// or for routing messages through a different provider client.
func WithDispatcher(d Dispatcher) Option {
	return func(c *Client) {
		if d != nil {
			c.dispatcher = d
		}
	}
}

// WithFS reads templates from the given filesystem instead of the OS.
// Template paths are then interpreted relative to its root.
func WithFS(fsys fs.FS) Option {
	return func(c *Client) {
		if fsys != nil {
			c.fsys = fsys
		}
	}
}

// WithRetainOnFailure keeps the outbox contents when a batch dispatch fails,
// so the same batch can be fired again. By default the outbox is cleared
// after every dispatch attempt, dropping undelivered messages on failure.
func WithRetainOnFailure() Option {
	return func(c *Client) {
		c.retainOnFailure = true
	}
}
