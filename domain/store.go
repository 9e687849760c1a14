package domain

import (
	"context"
	"fmt"
)

const (
	SortByCreatedAt   = "created_at"
	SortByPersonality = "personality"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListOptions controls pagination and ordering of conversation listings.
type ListOptions struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

func (o ListOptions) Validate() error {
	if o.Page < 1 || o.PageSize < 1 {
		return fmt.Errorf("%w: page and page_size must be >= 1", ErrInvalidArgument)
	}
	if o.SortBy != SortByCreatedAt && o.SortBy != SortByPersonality {
		return fmt.Errorf("%w: sort_by must be %q or %q", ErrInvalidArgument, SortByCreatedAt, SortByPersonality)
	}
	if o.SortOrder != SortAsc && o.SortOrder != SortDesc {
		return fmt.Errorf("%w: sort_order must be %q or %q", ErrInvalidArgument, SortAsc, SortDesc)
	}
	return nil
}

func (o ListOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}

// ConversationStore is the durable record of conversations and their ordered
// messages. Every write commits before the call returns; there is no
// cross-call transaction, so a chat turn is a sequence of independently
// committing steps.
type ConversationStore interface {
	// CreateConversation persists a new conversation for the personality and
	// returns it with a freshly generated id.
	CreateConversation(ctx context.Context, personalityID string) (Conversation, error)

	// AppendMessage persists one message. It does not verify that the
	// conversation exists; callers own that invariant.
	AppendMessage(ctx context.Context, conversationID string, role Role, content string) (Message, error)

	// Messages returns the conversation's messages sorted ascending by
	// creation time. A conversation with no messages yields an empty slice,
	// not an error.
	Messages(ctx context.Context, conversationID string) ([]Message, error)

	// Conversation returns the record without its messages, or ErrNotFound.
	Conversation(ctx context.Context, id string) (Conversation, error)

	// ListConversations returns one page of conversations plus the total
	// unfiltered count. Invalid options yield ErrInvalidArgument.
	ListConversations(ctx context.Context, opts ListOptions) ([]Conversation, int, error)
}
