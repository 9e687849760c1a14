package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/satriahrh/persona-chat/domain"
	"github.com/satriahrh/persona-chat/utils/log"
)

type ChatRequest struct {
	Message        string
	Personality    string
	ConversationID string
}

type ChatResult struct {
	Response       string
	ConversationID string
}

// ChatService runs the per-turn workflow over the store and model ports.
// Every dependency is injected; the service holds no mutable state of its
// own and is safe for concurrent use.
type ChatService struct {
	registry *domain.Registry
	store    domain.ConversationStore
	llm      domain.Llm
}

func NewChatService(registry *domain.Registry, store domain.ConversationStore, llm domain.Llm) *ChatService {
	return &ChatService{
		registry: registry,
		store:    store,
		llm:      llm,
	}
}

// Chat executes one turn: validate, resolve the conversation, persist the
// user message, compose the effective prompt from the full stored history,
// invoke the model, persist the assistant message, respond.
//
// The steps commit independently; there is no rollback. A model failure
// after step three leaves the user message persisted — an orphaned user
// turn that later transcript reads will show. Two concurrent turns on the
// same conversation id may interleave their rows; the store keeps both, but
// the resulting order between them is unspecified.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (ChatResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ChatResult{}, fmt.Errorf("%w: message cannot be empty", domain.ErrInvalidArgument)
	}

	personality, err := s.registry.Get(req.Personality)
	if err != nil {
		return ChatResult{}, fmt.Errorf("%w: invalid personality %q", domain.ErrInvalidArgument, req.Personality)
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversation, err := s.store.CreateConversation(ctx, personality.ID)
		if err != nil {
			return ChatResult{}, fmt.Errorf("create conversation: %w", err)
		}
		conversationID = conversation.ID
	}
	// A supplied id is used as-is; appending to a conversation row that was
	// never created is the caller's problem, matching the append
	// precondition on the store.

	if _, err := s.store.AppendMessage(ctx, conversationID, domain.RoleUser, message); err != nil {
		return ChatResult{}, fmt.Errorf("persist user message: %w", err)
	}

	history, err := s.store.Messages(ctx, conversationID)
	if err != nil {
		return ChatResult{}, fmt.Errorf("read history: %w", err)
	}

	effectivePrompt := ComposePrompt(personality, history)

	response, err := s.llm.Generate(ctx, effectivePrompt, message, personality.Temperature())
	if err != nil {
		log.With(
			zap.String("conversation_id", conversationID),
			zap.String("personality", personality.ID),
		).Warn("model call failed", zap.Error(err))
		return ChatResult{}, err
	}

	if _, err := s.store.AppendMessage(ctx, conversationID, domain.RoleAssistant, response); err != nil {
		return ChatResult{}, fmt.Errorf("persist assistant message: %w", err)
	}

	return ChatResult{
		Response:       response,
		ConversationID: conversationID,
	}, nil
}

// Transcript returns a conversation with its messages in transcript order.
func (s *ChatService) Transcript(ctx context.Context, conversationID string) (domain.Conversation, error) {
	conversation, err := s.store.Conversation(ctx, conversationID)
	if err != nil {
		return domain.Conversation{}, err
	}
	messages, err := s.store.Messages(ctx, conversationID)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("read history: %w", err)
	}
	conversation.Messages = messages
	return conversation, nil
}

// ListConversations returns one page of conversations, each carrying its
// full transcript, plus the total unfiltered count.
func (s *ChatService) ListConversations(ctx context.Context, opts domain.ListOptions) ([]domain.Conversation, int, error) {
	conversations, total, err := s.store.ListConversations(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	for i := range conversations {
		messages, err := s.store.Messages(ctx, conversations[i].ID)
		if err != nil {
			return nil, 0, fmt.Errorf("read history: %w", err)
		}
		conversations[i].Messages = messages
	}
	return conversations, total, nil
}
