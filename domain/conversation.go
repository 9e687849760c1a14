package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Conversation is a durable exchange tied to the personality it was started
// with. It owns an ordered collection of Messages.
type Conversation struct {
	ID          string    `json:"id"`
	Personality string    `json:"personality"`
	CreatedAt   time.Time `json:"created_at"`
	Messages    []Message `json:"messages"`
}

// Message is one side of a turn. Messages are append-only: never mutated or
// deleted once written. Within a conversation the canonical transcript order
// is ascending CreatedAt, regardless of storage default order.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"-"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
