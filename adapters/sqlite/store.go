package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/satriahrh/persona-chat/domain"
)

// Store is the durable ConversationStore on sqlite. Each method commits
// before returning; sqlite serializes concurrent writers, so appends from
// different conversations cannot corrupt each other's order.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Init creates the schema when it does not exist yet.
func (s *Store) Init() error {
	if _, err := s.db.Exec(createTables); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateConversation(ctx context.Context, personalityID string) (domain.Conversation, error) {
	conversation := domain.Conversation{
		ID:          uuid.NewString(),
		Personality: personalityID,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, insertConversation,
		conversation.ID, conversation.Personality, conversation.CreatedAt)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("insert conversation: %w", err)
	}
	return conversation, nil
}

// AppendMessage writes one message row. The conversation's existence is a
// caller precondition; no foreign-key check happens here.
func (s *Store) AppendMessage(ctx context.Context, conversationID string, role domain.Role, content string) (domain.Message, error) {
	message := domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, insertMessage,
		message.ID, message.ConversationID, string(message.Role), message.Content, message.CreatedAt)
	if err != nil {
		return domain.Message{}, fmt.Errorf("insert message: %w", err)
	}
	return message, nil
}

func (s *Store) Messages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, selectMessages, conversationID)
	if err != nil {
		return nil, fmt.Errorf("select messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		var role string
		if err := rows.Scan(&m.ID, &m.ConversationID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.Role = domain.Role(role)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

func (s *Store) Conversation(ctx context.Context, id string) (domain.Conversation, error) {
	var c domain.Conversation
	row := s.db.QueryRowContext(ctx, selectConversation, id)
	err := row.Scan(&c.ID, &c.Personality, &c.CreatedAt)
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.Conversation{}, fmt.Errorf("%w: conversation %q", domain.ErrNotFound, id)
	default:
		return domain.Conversation{}, fmt.Errorf("select conversation: %w", err)
	}
}

func (s *Store) ListConversations(ctx context.Context, opts domain.ListOptions) ([]domain.Conversation, int, error) {
	if err := opts.Validate(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countConversations).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count conversations: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, listQuery(opts), opts.PageSize, opts.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("select conversations: %w", err)
	}
	defer rows.Close()

	conversations := []domain.Conversation{}
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.Personality, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate conversations: %w", err)
	}
	return conversations, total, nil
}

// listQuery interpolates the validated sort column and direction. Both come
// from the ListOptions whitelist, never from raw request input.
func listQuery(opts domain.ListOptions) string {
	column := opts.SortBy
	direction := strings.ToUpper(opts.SortOrder)
	return fmt.Sprintf(selectConversationsPage, column, direction)
}
