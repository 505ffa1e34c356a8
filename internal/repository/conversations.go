package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"realestate-agent/internal/model"
)

// ConversationRepository persists session histories as JSONB arrays
type ConversationRepository struct {
	db *sqlx.DB
}

// NewConversationRepository creates a conversation repository over an open pool
func NewConversationRepository(db *sqlx.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

var _ ConversationStore = (*ConversationRepository)(nil)

// Get returns the conversation for sessionID, or nil when none exists
func (r *ConversationRepository) Get(ctx context.Context, sessionID string) (*model.Conversation, error) {
	var conv model.Conversation
	query := `
		SELECT session_id, messages, is_active, created_at, updated_at
		FROM conversations
		WHERE session_id = $1
	`
	if err := r.db.GetContext(ctx, &conv, query, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

// Append adds messages to the end of a session, creating it if needed
func (r *ConversationRepository) Append(ctx context.Context, sessionID string, msgs ...model.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	query := `
		INSERT INTO conversations (session_id, messages, is_active, created_at, updated_at)
		VALUES ($1, $2, true, NOW(), NOW())
		ON CONFLICT (session_id) DO UPDATE
		SET messages = conversations.messages || EXCLUDED.messages,
		    updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, sessionID, model.Messages(msgs)); err != nil {
		return fmt.Errorf("failed to append conversation messages: %w", err)
	}
	return nil
}

// Delete removes a session's history; deleting a missing session is not an error
func (r *ConversationRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM conversations WHERE session_id = $1", sessionID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
