package trebuchet

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	texttemplate "text/template"

	"github.com/google/uuid"

	"github.com/dmitrymomot/trebuchet/pkg/logger"
	"github.com/dmitrymomot/trebuchet/pkg/postmark"
	"github.com/dmitrymomot/trebuchet/pkg/render"
)

// MetadataIDKey is the Postmark metadata key carrying the client-generated
// message id. Postmark echoes metadata in delivery webhooks, which ties
// provider events back to log lines emitted here.
const MetadataIDKey = "trebuchet_id"

// Dispatcher submits prepared messages to the email provider.
type Dispatcher interface {
	// SendEmail delivers a single message.
	SendEmail(ctx context.Context, msg *postmark.Message) (*postmark.Response, error)

	// SendBatch delivers an ordered batch of messages in one request.
	SendBatch(ctx context.Context, msgs []*postmark.Message) ([]postmark.Response, error)
}

// Client renders templated emails and dispatches them to Postmark, either
// immediately (Fling) or through an in-memory outbox (Load then Fire).
//
// The outbox and template cache live for the client's lifetime and assume a
// single logical caller driving Load/Fire/Reset; nothing is persisted.
type Client struct {
	dispatcher      Dispatcher
	renderer        *render.Renderer
	outbox          *outbox
	logger          *slog.Logger
	httpClient      *http.Client
	fsys            fs.FS
	config          Config
	retainOnFailure bool
}

// New creates a client. Unset config fields fall back to defaults: the
// Postmark sandbox token, the PRODUCTION environment and ./templates.
func New(cfg Config, opts ...Option) *Client {
	cfg.applyDefaults()

	c := &Client{
		config: cfg,
		outbox: newOutbox(postmark.MaxBatchSize),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(slog.String("environment", cfg.Environment))
	c.renderer = render.New(c.fsys)

	if c.dispatcher == nil {
		var pmOpts []postmark.Option
		if c.httpClient != nil {
			pmOpts = append(pmOpts, postmark.WithHTTPClient(c.httpClient))
		}
		c.dispatcher = postmark.New(postmark.Config{ServerToken: cfg.APIKey}, pmOpts...)
	}

	return c
}

// SendOptions describe one message: provider fields, a template reference
// and the data rendered into it.
//
// The template is referenced either by explicit HTML/CSS/Text paths or by
// TemplateName, which resolves to index.html, index.css and index.txt under
// {TemplateDir}/{TemplateName}. A non-empty TemplateName wins over explicit
// paths.
type SendOptions struct {
	Data         any
	Message      postmark.Message
	TemplateName string
	HTML         string
	CSS          string
	Text         string
}

// Fling renders the message bodies and sends the message immediately.
func (c *Client) Fling(ctx context.Context, opts SendOptions) (*postmark.Response, error) {
	msg, err := c.prepare(opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.dispatcher.SendEmail(ctx, msg)
	if err != nil {
		c.logger.ErrorContext(ctx, "fling failed",
			slog.String("message_id", msg.Metadata[MetadataIDKey]),
			slog.String("error", err.Error()))
		return nil, errors.Join(ErrSendFailed, err)
	}

	c.logger.InfoContext(ctx, "message flung",
		slog.String("message_id", msg.Metadata[MetadataIDKey]),
		slog.String("provider_message_id", resp.MessageID))
	return resp, nil
}

// Load renders the message bodies and appends the message to the outbox,
// returning the new outbox length. Loading beyond the batch capacity fails
// with ErrOutboxFull and leaves the outbox unchanged.
func (c *Client) Load(opts SendOptions) (int, error) {
	msg, err := c.prepare(opts)
	if err != nil {
		return c.outbox.len(), err
	}

	n, err := c.outbox.add(msg)
	if err != nil {
		return n, err
	}

	c.logger.Debug("message loaded",
		slog.String("message_id", msg.Metadata[MetadataIDKey]),
		slog.Int("outbox_length", n))
	return n, nil
}

// Fire sends the entire outbox as one batch request. The outbox is cleared
// after the dispatch attempt completes, success or failure, unless the
// client was built with WithRetainOnFailure. Firing an empty outbox is a
// no-op and touches neither the outbox nor the network.
func (c *Client) Fire(ctx context.Context) ([]postmark.Response, error) {
	msgs := c.outbox.snapshot()
	if len(msgs) == 0 {
		return nil, nil
	}

	resp, err := c.dispatcher.SendBatch(ctx, msgs)
	if err == nil || !c.retainOnFailure {
		c.outbox.clear()
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "fire failed",
			slog.Int("batch_size", len(msgs)),
			slog.Bool("retained", c.retainOnFailure),
			slog.String("error", err.Error()))
		return nil, errors.Join(ErrSendFailed, err)
	}

	c.logger.InfoContext(ctx, "outbox fired", slog.Int("batch_size", len(msgs)))
	return resp, nil
}

// Reset discards all pending messages and returns the resulting outbox
// length, always 0. It never touches the network.
func (c *Client) Reset() int {
	return c.outbox.clear()
}

// Pending reports the current outbox length.
func (c *Client) Pending() int {
	return c.outbox.len()
}

// prepare renders the bodies and merges them into the message. A render
// failure halts the operation; nothing half-rendered is ever dispatched.
func (c *Client) prepare(opts SendOptions) (*postmark.Message, error) {
	htmlPath, cssPath, textPath := c.resolvePaths(opts)

	result, err := c.renderer.Render(render.Input{
		HTMLPath: htmlPath,
		TextPath: textPath,
		CSSPath:  cssPath,
		Data:     opts.Data,
	})
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	msg := opts.Message
	msg.HTMLBody = result.HTML
	msg.TextBody = result.Text

	// Subject resolution: explicit field > template frontmatter.
	if msg.Subject == "" {
		if subject, ok := result.Metadata["Subject"].(string); ok && subject != "" {
			processed, err := executeSubject(subject, opts.Data)
			if err != nil {
				return nil, errors.Join(ErrRenderFailed, err)
			}
			msg.Subject = processed
		}
	}

	stampMessageID(&msg)
	return &msg, nil
}

// resolvePaths applies the named-template convention. A non-empty template
// name overrides explicit paths.
func (c *Client) resolvePaths(opts SendOptions) (htmlPath, cssPath, textPath string) {
	if opts.TemplateName != "" {
		base := filepath.Join(c.config.TemplateDir, opts.TemplateName)
		return filepath.Join(base, "index.html"),
			filepath.Join(base, "index.css"),
			filepath.Join(base, "index.txt")
	}
	return opts.HTML, opts.CSS, opts.Text
}

// executeSubject processes a frontmatter subject as a template, so subjects
// support {{.Variable}} syntax.
func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// stampMessageID assigns a correlation id unless the caller set one.
func stampMessageID(msg *postmark.Message) {
	if msg.Metadata[MetadataIDKey] != "" {
		return
	}
	if msg.Metadata == nil {
		msg.Metadata = make(map[string]string, 1)
	}
	msg.Metadata[MetadataIDKey] = uuid.NewString()
}
