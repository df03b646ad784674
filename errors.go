package trebuchet

import "errors"

var (
	// ErrOutboxFull indicates the outbox already holds the maximum number of
	// messages a single batch request can carry.
	ErrOutboxFull = errors.New("trebuchet: outbox is full")

	// ErrRenderFailed indicates the message body could not be rendered.
	ErrRenderFailed = errors.New("trebuchet: failed to render message")

	// ErrSendFailed indicates the provider rejected the dispatch or the
	// request never reached it.
	ErrSendFailed = errors.New("trebuchet: failed to send message")
)
