// Package pipeline implements the inbound message preprocessing stage: it
// normalizes events, runs caller-registered preprocessors, resolves whether
// the bot is being addressed, and publishes events on a bus.
package pipeline

import (
	"time"

	"github.com/mtkit/mtcode/pkg/message"
)

// DetailType indicates the kind of conversation an event arrived from.
type DetailType string

const (
	// DetailPrivate is a direct (one-to-one) conversation.
	DetailPrivate DetailType = "private"
	// DetailGroup is a multi-participant group conversation.
	DetailGroup DetailType = "group"
	// DetailDiscuss is a legacy discuss-group conversation.
	DetailDiscuss DetailType = "discuss"
)

// Event is one inbound message event flowing through the pipeline.
type Event struct {
	Time      time.Time         `json:"time"`
	SelfID    int64             `json:"self_id"`
	UserID    int64             `json:"user_id"`
	MessageID string            `json:"message_id,omitempty"`
	Detail    DetailType        `json:"detail_type"`
	SubType   string            `json:"sub_type,omitempty"`
	Message   message.Message   `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`

	// ToMe reports whether the message addresses the bot. Upstream sources
	// may set it for explicit reply markers; the pipeline sets it for
	// private chats, leading mentions, and nickname prefixes, and never
	// clears an incoming true.
	ToMe bool `json:"to_me,omitempty"`
}

// IsPrivate reports whether the event came from a direct conversation.
func (e *Event) IsPrivate() bool {
	return e.Detail == DetailPrivate
}
