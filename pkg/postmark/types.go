package postmark

import "time"

// MaxBatchSize is the maximum number of messages Postmark accepts in a single
// batch request.
const MaxBatchSize = 500

// Header is a custom message header.
type Header struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// Attachment represents a file attachment. Content must be base64-encoded,
// which encoding/json does automatically for []byte.
type Attachment struct {
	Name        string `json:"Name"`
	ContentType string `json:"ContentType"`
	ContentID   string `json:"ContentID,omitempty"`
	Content     []byte `json:"Content"`
}

// Message is a single email in Postmark's wire format. Recipient fields
// accept comma-separated lists of addresses.
type Message struct {
	Headers       []Header          `json:"Headers,omitempty"`
	Metadata      map[string]string `json:"Metadata,omitempty"`
	From          string            `json:"From,omitempty"`
	To            string            `json:"To,omitempty"`
	Cc            string            `json:"Cc,omitempty"`
	Bcc           string            `json:"Bcc,omitempty"`
	Subject       string            `json:"Subject,omitempty"`
	Tag           string            `json:"Tag,omitempty"`
	HTMLBody      string            `json:"HtmlBody"`
	TextBody      string            `json:"TextBody"`
	ReplyTo       string            `json:"ReplyTo,omitempty"`
	MessageStream string            `json:"MessageStream,omitempty"`
	Attachments   []Attachment      `json:"Attachments,omitempty"`
	TrackOpens    bool              `json:"TrackOpens,omitempty"`
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return name + " <" + email + ">"
}

// Response is the per-message result returned by the send endpoints. For
// batch sends, Postmark returns one Response per submitted message; entries
// with a non-zero ErrorCode were rejected while the rest were accepted.
type Response struct {
	To          string    `json:"To"`
	SubmittedAt time.Time `json:"SubmittedAt"`
	MessageID   string    `json:"MessageID"`
	ErrorCode   int       `json:"ErrorCode"`
	Message     string    `json:"Message"`
}
