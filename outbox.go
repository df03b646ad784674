package trebuchet

import (
	"sync"

	"github.com/dmitrymomot/trebuchet/pkg/postmark"
)

// outbox is a bounded, ordered collection of messages awaiting batch
// dispatch. Individual operations are safe for concurrent use, but the
// load/fire cycle assumes a single logical writer; there is no atomicity
// across calls.
type outbox struct {
	messages []*postmark.Message
	capacity int

	mu sync.Mutex
}

func newOutbox(capacity int) *outbox {
	return &outbox{capacity: capacity}
}

// add appends a message and returns the new length. At capacity it returns
// ErrOutboxFull and leaves the contents unchanged.
func (o *outbox) add(m *postmark.Message) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.messages) >= o.capacity {
		return len(o.messages), ErrOutboxFull
	}
	o.messages = append(o.messages, m)
	return len(o.messages), nil
}

// snapshot returns the pending messages in load order.
func (o *outbox) snapshot() []*postmark.Message {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]*postmark.Message, len(o.messages))
	copy(out, o.messages)
	return out
}

// clear empties the outbox and returns the resulting length, always 0.
func (o *outbox) clear() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.messages = nil
	return 0
}

func (o *outbox) len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.messages)
}
