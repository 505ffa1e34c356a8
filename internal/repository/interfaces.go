package repository

import (
	"context"

	"realestate-agent/internal/model"
)

// PropertyStore is the catalog lookup and management surface
type PropertyStore interface {
	Find(ctx context.Context, filter model.Filter, opts model.FindOptions) ([]model.Property, error)
	GetByID(ctx context.Context, id string) (*model.Property, error)
	Create(ctx context.Context, p *model.Property) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
	BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string)
	Ping(ctx context.Context) error
}

// ConversationStore keeps per-session message history
type ConversationStore interface {
	Get(ctx context.Context, sessionID string) (*model.Conversation, error)
	Append(ctx context.Context, sessionID string, msgs ...model.Message) error
	Delete(ctx context.Context, sessionID string) error
}
