// Package postmark is a minimal client for Postmark's transactional email
// HTTP API. It covers the two send endpoints the trebuchet facade needs:
// single-message send and batch send.
//
// # Usage
//
//	client := postmark.New(postmark.Config{ServerToken: os.Getenv("POSTMARK_API_KEY")})
//
//	resp, err := client.SendEmail(ctx, &postmark.Message{
//		From:     "team@example.com",
//		To:       "user@example.com",
//		Subject:  "Hello",
//		HTMLBody: "<h1>Hello</h1>",
//	})
//
// Batch sends accept up to MaxBatchSize messages in a single request:
//
//	responses, err := client.SendBatch(ctx, messages)
//
// Each call performs exactly one HTTP round trip. The client does not retry;
// callers decide what to do with failures.
//
// # Errors
//
// A response with a non-200 status is returned as *APIError carrying the
// provider's ErrorCode and Message fields. Failures before a response was
// received (DNS, connection, context cancellation) wrap ErrTransport.
package postmark
