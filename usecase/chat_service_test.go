package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/satriahrh/persona-chat/domain"
)

// fakeStore keeps conversations and messages in memory, appending in call
// order so timestamp order equals insertion order.
type fakeStore struct {
	conversations map[string]domain.Conversation
	messages      map[string][]domain.Message
	nextID        int
	appendErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		conversations: map[string]domain.Conversation{},
		messages:      map[string][]domain.Message{},
	}
}

func (s *fakeStore) id() string {
	s.nextID++
	return fmt.Sprintf("id-%d", s.nextID)
}

func (s *fakeStore) CreateConversation(ctx context.Context, personalityID string) (domain.Conversation, error) {
	c := domain.Conversation{
		ID:          s.id(),
		Personality: personalityID,
		CreatedAt:   time.Now().UTC(),
	}
	s.conversations[c.ID] = c
	return c, nil
}

func (s *fakeStore) AppendMessage(ctx context.Context, conversationID string, role domain.Role, content string) (domain.Message, error) {
	if s.appendErr != nil {
		return domain.Message{}, s.appendErr
	}
	m := domain.Message{
		ID:             s.id(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages[conversationID] = append(s.messages[conversationID], m)
	return m, nil
}

func (s *fakeStore) Messages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	return append([]domain.Message{}, s.messages[conversationID]...), nil
}

func (s *fakeStore) Conversation(ctx context.Context, id string) (domain.Conversation, error) {
	c, ok := s.conversations[id]
	if !ok {
		return domain.Conversation{}, fmt.Errorf("%w: conversation %q", domain.ErrNotFound, id)
	}
	return c, nil
}

func (s *fakeStore) ListConversations(ctx context.Context, opts domain.ListOptions) ([]domain.Conversation, int, error) {
	if err := opts.Validate(); err != nil {
		return nil, 0, err
	}
	all := make([]domain.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		all = append(all, c)
	}
	return all, len(all), nil
}

func (s *fakeStore) totalMessages() int {
	n := 0
	for _, msgs := range s.messages {
		n += len(msgs)
	}
	return n
}

// fakeLlm records the prompts it was called with and plays back canned
// responses.
type fakeLlm struct {
	response string
	err      error

	systemPrompts []string
	userMessages  []string
	temperatures  []float64
}

func (f *fakeLlm) Generate(ctx context.Context, systemPrompt, userMessage string, temperature float64) (string, error) {
	f.systemPrompts = append(f.systemPrompts, systemPrompt)
	f.userMessages = append(f.userMessages, userMessage)
	f.temperatures = append(f.temperatures, temperature)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testRegistry(t *testing.T) *domain.Registry {
	t.Helper()
	reg, err := domain.NewRegistry([]domain.Personality{testPersonality()})
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return reg
}

func TestChatFirstTurnCreatesConversation(t *testing.T) {
	store := newFakeStore()
	model := &fakeLlm{response: "Hello! How can I help?"}
	svc := NewChatService(testRegistry(t), store, model)

	result, err := svc.Chat(context.Background(), ChatRequest{
		Message:     "  hello  ",
		Personality: "formal-teacher",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if result.Response != "Hello! How can I help?" {
		t.Errorf("response = %q", result.Response)
	}
	if result.ConversationID == "" {
		t.Fatal("expected a generated conversation id")
	}
	if _, ok := store.conversations[result.ConversationID]; !ok {
		t.Error("conversation row was not created")
	}

	msgs := store.messages[result.ConversationID]
	if len(msgs) != 2 {
		t.Fatalf("expected exactly 2 messages after first turn, got %d", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("first message = %+v, want trimmed user message", msgs[0])
	}
	if msgs[1].Role != domain.RoleAssistant || msgs[1].Content != "Hello! How can I help?" {
		t.Errorf("second message = %+v, want assistant reply", msgs[1])
	}

	if len(model.temperatures) != 1 || model.temperatures[0] != 0.5 {
		t.Errorf("temperatures = %v, want the personality's 0.5", model.temperatures)
	}
	if model.userMessages[0] != "hello" {
		t.Errorf("user turn sent to model = %q, want trimmed message", model.userMessages[0])
	}
}

func TestChatSecondTurnCarriesHistory(t *testing.T) {
	store := newFakeStore()
	model := &fakeLlm{response: "first reply"}
	svc := NewChatService(testRegistry(t), store, model)

	first, err := svc.Chat(context.Background(), ChatRequest{
		Message:     "hello",
		Personality: "formal-teacher",
	})
	if err != nil {
		t.Fatalf("first turn: %v", err)
	}

	model.response = "second reply"
	second, err := svc.Chat(context.Background(), ChatRequest{
		Message:        "tell me more",
		Personality:    "formal-teacher",
		ConversationID: first.ConversationID,
	})
	if err != nil {
		t.Fatalf("second turn: %v", err)
	}
	if second.ConversationID != first.ConversationID {
		t.Errorf("conversation id changed between turns: %q vs %q", first.ConversationID, second.ConversationID)
	}

	msgs := store.messages[first.ConversationID]
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages after two turns, got %d", len(msgs))
	}

	prompt := model.systemPrompts[1]
	for _, line := range []string{
		"USER: hello\n",
		"ASSISTANT: first reply\n",
		"USER: tell me more\n",
	} {
		if !strings.Contains(prompt, line) {
			t.Errorf("second-turn prompt missing %q:\n%s", line, prompt)
		}
	}
}

func TestChatEmptyMessage(t *testing.T) {
	store := newFakeStore()
	svc := NewChatService(testRegistry(t), store, &fakeLlm{response: "x"})

	_, err := svc.Chat(context.Background(), ChatRequest{
		Message:     "   \n\t ",
		Personality: "formal-teacher",
	})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if len(store.conversations) != 0 || store.totalMessages() != 0 {
		t.Error("whitespace-only message must not touch the store")
	}
}

func TestChatUnknownPersonality(t *testing.T) {
	store := newFakeStore()
	svc := NewChatService(testRegistry(t), store, &fakeLlm{response: "x"})

	_, err := svc.Chat(context.Background(), ChatRequest{
		Message:     "hello",
		Personality: "nonexistent",
	})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if len(store.conversations) != 0 || store.totalMessages() != 0 {
		t.Error("unknown personality must not touch the store")
	}
}

func TestChatEmptyModelResponseKeepsUserMessage(t *testing.T) {
	store := newFakeStore()
	svc := NewChatService(testRegistry(t), store, &fakeLlm{err: domain.ErrEmptyResponse})

	result, err := svc.Chat(context.Background(), ChatRequest{
		Message:     "hello",
		Personality: "formal-teacher",
	})
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
	if result.ConversationID != "" {
		t.Errorf("failed turn should return zero result, got %+v", result)
	}

	// The turn is not transactional: the user message persisted in step
	// three survives the model failure.
	if store.totalMessages() != 1 {
		t.Fatalf("expected the orphaned user message to remain, got %d messages", store.totalMessages())
	}
	for _, msgs := range store.messages {
		if msgs[0].Role != domain.RoleUser || msgs[0].Content != "hello" {
			t.Errorf("surviving message = %+v, want the user turn", msgs[0])
		}
	}
}

func TestChatUpstreamFailureKeepsUserMessage(t *testing.T) {
	store := newFakeStore()
	upstream := fmt.Errorf("%w: connection refused", domain.ErrUpstream)
	svc := NewChatService(testRegistry(t), store, &fakeLlm{err: upstream})

	_, err := svc.Chat(context.Background(), ChatRequest{
		Message:     "hello",
		Personality: "formal-teacher",
	})
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if store.totalMessages() != 1 {
		t.Errorf("expected 1 surviving message, got %d", store.totalMessages())
	}
}

func TestChatSuppliedConversationIDUsedAsIs(t *testing.T) {
	store := newFakeStore()
	model := &fakeLlm{response: "reply"}
	svc := NewChatService(testRegistry(t), store, model)

	// No existence check on a supplied id: messages accrete under it even
	// though no conversation row was ever created.
	result, err := svc.Chat(context.Background(), ChatRequest{
		Message:        "hello",
		Personality:    "formal-teacher",
		ConversationID: "ghost",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if result.ConversationID != "ghost" {
		t.Errorf("conversation id = %q, want the supplied id", result.ConversationID)
	}
	if len(store.conversations) != 0 {
		t.Error("supplied id must not create a conversation row")
	}
	if len(store.messages["ghost"]) != 2 {
		t.Errorf("expected 2 messages under the supplied id, got %d", len(store.messages["ghost"]))
	}
}

func TestTranscript(t *testing.T) {
	store := newFakeStore()
	svc := NewChatService(testRegistry(t), store, &fakeLlm{response: "reply"})

	result, err := svc.Chat(context.Background(), ChatRequest{
		Message:     "hello",
		Personality: "formal-teacher",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	conversation, err := svc.Transcript(context.Background(), result.ConversationID)
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if conversation.Personality != "formal-teacher" {
		t.Errorf("personality = %q", conversation.Personality)
	}
	if len(conversation.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(conversation.Messages))
	}

	_, err = svc.Transcript(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing transcript err = %v, want ErrNotFound", err)
	}
}
