package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"realestate-agent/internal/config"
	"realestate-agent/internal/metrics"
	"realestate-agent/internal/model"
	"realestate-agent/internal/repository"
)

// OwnerContacter reaches a listing's owner
type OwnerContacter interface {
	ContactOwner(ctx context.Context, propertyID string) (*model.ContactResult, error)
}

// AgentService handles the agent's business logic
type AgentService struct {
	properties    repository.PropertyStore
	conversations repository.ConversationStore
	composer      *Composer
	contacter     OwnerContacter
	limits        config.SearchConfig
	logger        *slog.Logger
	metrics       *metrics.Metrics
	now           func() time.Time

	composeTimeout time.Duration
}

// AgentOption configures an AgentService
type AgentOption func(*AgentService)

// WithComposeTimeout bounds the generator chain of each query. When it
// expires the deterministic fallback answers, leaving the rest of the
// request deadline for writing the response.
func WithComposeTimeout(d time.Duration) AgentOption {
	return func(s *AgentService) {
		s.composeTimeout = d
	}
}

// NewAgentService creates a new agent service
func NewAgentService(
	properties repository.PropertyStore,
	conversations repository.ConversationStore,
	composer *Composer,
	contacter OwnerContacter,
	limits config.SearchConfig,
	logger *slog.Logger,
	m *metrics.Metrics,
	opts ...AgentOption,
) *AgentService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AgentService{
		properties:    properties,
		conversations: conversations,
		composer:      composer,
		contacter:     contacter,
		limits:        limits,
		logger:        logger,
		metrics:       m,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query answers a natural-language property search
func (s *AgentService) Query(ctx context.Context, req model.QueryRequest) (*model.QueryResponse, error) {
	startTime := s.now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrQueryRequired
	}

	filter := ParseQuery(query)
	s.logger.Debug("parsed query", "query", query, "filter", filter)

	properties, err := s.properties.Find(ctx, filter, model.FindOptions{Limit: s.limits.QueryLimit})
	if err != nil {
		s.metrics.RecordQuery("error", s.now().Sub(startTime), 0)
		return nil, fmt.Errorf("find properties: %w", err)
	}

	reply := s.compose(ctx, query, properties, filter)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "session_" + uuid.NewString()
	}

	now := s.now()
	if err := s.conversations.Append(ctx, sessionID,
		model.Message{Role: model.RoleUser, Content: query, Timestamp: startTime},
		model.Message{Role: model.RoleAgent, Content: reply.Text, Timestamp: now},
	); err != nil {
		s.logger.Warn("failed to record conversation", "session_id", sessionID, "error", err)
	}

	s.metrics.RecordQuery("success", now.Sub(startTime), len(properties))
	s.logger.Info("agent query answered",
		"session_id", sessionID,
		"found", len(properties),
		"tier", reply.Tier,
		"took_ms", now.Sub(startTime).Milliseconds())

	return &model.QueryResponse{
		Success:        true,
		Query:          query,
		Response:       reply.Text,
		Properties:     properties,
		FiltersApplied: filter,
		TotalFound:     len(properties),
		SessionID:      sessionID,
		Timestamp:      now.UTC().Format(time.RFC3339Nano),
	}, nil
}

// compose runs the composer under the compose budget. Only the generator
// chain is bounded; the caller's ctx stays usable afterwards.
func (s *AgentService) compose(ctx context.Context, query string, properties []model.Property, filter model.Filter) Composition {
	if s.composeTimeout <= 0 {
		return s.composer.Compose(ctx, query, properties, filter)
	}
	composeCtx, cancel := context.WithTimeout(ctx, s.composeTimeout)
	defer cancel()
	return s.composer.Compose(composeCtx, query, properties, filter)
}

// ContactOwner simulates reaching the owner of an existing property
func (s *AgentService) ContactOwner(ctx context.Context, req model.ContactRequest) (*model.ContactResponse, error) {
	property, err := s.GetProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	result, err := s.contacter.ContactOwner(ctx, property.ID)
	if err != nil {
		return nil, fmt.Errorf("contact owner: %w", err)
	}

	return &model.ContactResponse{
		Success:       true,
		Property:      property.Summary(),
		ContactResult: result,
		Timestamp:     s.now().UTC().Format(time.RFC3339Nano),
	}, nil
}

// Recommendations returns the cheapest listings matching explicit preferences
func (s *AgentService) Recommendations(ctx context.Context, req model.RecommendationRequest) (*model.RecommendationResponse, error) {
	filter := model.NewFilter()
	if req.Budget > 0 {
		filter.Price = &model.PriceCeiling{LTE: req.Budget}
	}
	if req.PropertyType != "" {
		t := req.PropertyType
		filter.Type = &t
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		filter.Location = &loc
	}

	properties, err := s.properties.Find(ctx, filter, model.FindOptions{
		Limit:       s.limits.RecommendationLimit,
		SortByPrice: true,
	})
	if err != nil {
		return nil, fmt.Errorf("find recommendations: %w", err)
	}

	return &model.RecommendationResponse{
		Success:         true,
		Recommendations: properties,
		Count:           len(properties),
		Message:         "Here are my top recommendations based on your preferences",
	}, nil
}

// ListProperties returns catalog entries matching an explicit filter
func (s *AgentService) ListProperties(ctx context.Context, filter model.Filter) ([]model.Property, error) {
	properties, err := s.properties.Find(ctx, filter, model.FindOptions{Limit: s.limits.ListLimit})
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return properties, nil
}

// GetProperty retrieves a single property
func (s *AgentService) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPropertyNotFound
	}
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	if property == nil {
		return nil, ErrPropertyNotFound
	}
	return property, nil
}

// CreateProperty validates and stores a new listing
func (s *AgentService) CreateProperty(ctx context.Context, p *model.Property) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProperty, err)
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

// GetConversation returns a session's history, empty when unknown
func (s *AgentService) GetConversation(ctx context.Context, sessionID string) (*model.Conversation, error) {
	conv, err := s.conversations.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	if conv == nil {
		return &model.Conversation{SessionID: sessionID, Messages: model.Messages{}}, nil
	}
	return conv, nil
}

// ClearConversation deletes a session's history
func (s *AgentService) ClearConversation(ctx context.Context, sessionID string) error {
	if err := s.conversations.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear conversation: %w", err)
	}
	return nil
}

// UpdateEmbeddings stores description embeddings for multiple properties
func (s *AgentService) UpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	return s.properties.BatchUpdateEmbeddings(ctx, items)
}

// Ping reports whether the property store is reachable
func (s *AgentService) Ping(ctx context.Context) error {
	return s.properties.Ping(ctx)
}
