package studio

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrorPrefix marks assistant entries that report a failed turn.
const ErrorPrefix = "⚠️ "

func NewMessage(role Role, content string) Message {
	return Message{
		ID:        ulid.Make().String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewErrorMessage builds the assistant entry appended when a turn fails, so
// the thread always gets a reply.
func NewErrorMessage(reason string) Message {
	if reason == "" {
		reason = "Something went wrong generating a response."
	}
	return NewMessage(RoleAssistant, ErrorPrefix+reason)
}

// Conversation is an append-only message history.
type Conversation struct {
	messages []Message
}

func NewConversation(intro ...Message) *Conversation {
	return &Conversation{messages: append([]Message(nil), intro...)}
}

func (c *Conversation) Append(m Message) {
	c.messages = append(c.messages, m)
}

// Messages returns a copy of the history.
func (c *Conversation) Messages() []Message {
	return append([]Message(nil), c.messages...)
}
