// Package trebuchet renders templated transactional emails and hurls them at
// Postmark's HTTP API, one at a time or in batches.
//
// A message is sent in one of two patterns:
//
//   - Fling: render and send a single message immediately.
//   - Load / Fire: accumulate rendered messages in an in-memory outbox, then
//     send them all as one batch request.
//
// # Quick Start
//
//	cfg, err := trebuchet.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client := trebuchet.New(cfg)
//
//	resp, err := client.Fling(ctx, trebuchet.SendOptions{
//		Message: postmark.Message{
//			From:    "team@example.com",
//			To:      "user@example.com",
//			Subject: "Welcome",
//		},
//		TemplateName: "welcome",
//		Data:         map[string]any{"Name": "Alice"},
//	})
//
// # Templates
//
// Templates are plain html/template and text/template files. A named
// template "welcome" resolves to index.html, index.css and index.txt under
// {TemplateDir}/welcome; explicit paths can be given instead via the HTML,
// CSS and Text fields. When a stylesheet is present its rules are inlined
// into element style attributes for email-client compatibility.
//
// Templates may open with a YAML frontmatter block; a Subject key there
// becomes the message subject when the caller leaves it empty. An HTML
// template with a ".md" extension is treated as markdown and converted to
// HTML after execution.
//
// Compiled templates are cached per path for the client's lifetime; files
// are never re-read.
//
// # Batching
//
//	for _, u := range users {
//		if _, err := client.Load(trebuchet.SendOptions{
//			Message:      postmark.Message{From: from, To: u.Email},
//			TemplateName: "digest",
//			Data:         u,
//		}); err != nil {
//			return err
//		}
//	}
//
//	responses, err := client.Fire(ctx)
//
// The outbox holds at most postmark.MaxBatchSize (500) messages, matching
// the provider's batch limit. Fire clears the outbox after the dispatch
// attempt regardless of outcome; build the client with WithRetainOnFailure
// to keep undelivered batches around for another attempt. The outbox lives
// in memory only and assumes a single logical caller.
//
// # Errors
//
// Failures surface synchronously and are never retried. Render failures wrap
// ErrRenderFailed plus the render package sentinel identifying the failing
// file; dispatch failures wrap ErrSendFailed plus either *postmark.APIError
// (provider rejected the request) or postmark.ErrTransport (request never
// got a response).
package trebuchet
