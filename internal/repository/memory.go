package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"realestate-agent/internal/model"
)

// MemoryStore is an in-process PropertyStore and ConversationStore with the
// same filter semantics as the PostgreSQL repositories.
type MemoryStore struct {
	mu            sync.RWMutex
	properties    map[string]model.Property
	embeddings    map[string][]float32
	conversations map[string]*model.Conversation
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties:    make(map[string]model.Property),
		embeddings:    make(map[string][]float32),
		conversations: make(map[string]*model.Conversation),
	}
}

var (
	_ PropertyStore     = (*MemoryStore)(nil)
	_ ConversationStore = (*MemoryStore)(nil)
)

// Matches reports whether p satisfies every constraint in filter
func Matches(filter model.Filter, p model.Property) bool {
	if filter.IsAvailable && !p.IsAvailable {
		return false
	}
	if filter.Type != nil && p.Type != *filter.Type {
		return false
	}
	if filter.Bedrooms != nil && (p.Bedrooms == nil || *p.Bedrooms != *filter.Bedrooms) {
		return false
	}
	if filter.Price != nil && p.Price > filter.Price.LTE {
		return false
	}
	if filter.Location != nil {
		term := strings.ToLower(*filter.Location)
		if !strings.Contains(strings.ToLower(p.Location), term) && !strings.Contains(strings.ToLower(p.City), term) {
			return false
		}
	}
	if filter.ForSale != nil && p.ForSale != *filter.ForSale {
		return false
	}
	return true
}

// cloneProperty copies p without sharing pointer fields or slices
func cloneProperty(p model.Property) model.Property {
	cp := p
	if p.Bedrooms != nil {
		v := *p.Bedrooms
		cp.Bedrooms = &v
	}
	if p.Bathrooms != nil {
		v := *p.Bathrooms
		cp.Bathrooms = &v
	}
	if p.AreaValue != nil {
		v := *p.AreaValue
		cp.AreaValue = &v
	}
	if p.Amenities != nil {
		cp.Amenities = append(model.JSONArray{}, p.Amenities...)
	}
	return cp
}

// Ping implements PropertyStore
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

// Find implements PropertyStore
func (s *MemoryStore) Find(_ context.Context, filter model.Filter, opts model.FindOptions) ([]model.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Property{}
	for _, p := range s.properties {
		if Matches(filter, p) {
			out = append(out, cloneProperty(p))
		}
	}

	if opts.SortByPrice {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].DateAdded.After(out[j].DateAdded) })
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

// GetByID implements PropertyStore
func (s *MemoryStore) GetByID(_ context.Context, id string) (*model.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return nil, nil
	}
	cp := cloneProperty(p)
	return &cp, nil
}

// Create implements PropertyStore
func (s *MemoryStore) Create(_ context.Context, p *model.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, exists := s.properties[p.ID]; exists {
		return fmt.Errorf("property %s already exists", p.ID)
	}
	if p.State == "" {
		p.State = "Goa"
	}
	if p.AreaUnit == "" {
		p.AreaUnit = "sqft"
	}
	if p.DateAdded.IsZero() {
		p.DateAdded = time.Now().UTC()
	}
	s.properties[p.ID] = cloneProperty(*p)
	return nil
}

// Count implements PropertyStore
func (s *MemoryStore) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.properties), nil
}

// DeleteAll implements PropertyStore
func (s *MemoryStore) DeleteAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = make(map[string]model.Property)
	s.embeddings = make(map[string][]float32)
	return nil
}

// BatchUpdateEmbeddings implements PropertyStore
func (s *MemoryStore) BatchUpdateEmbeddings(_ context.Context, items []model.EmbeddingItem) (int, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	success := 0
	items, errs := partitionEmbeddingItems(items)
	for _, item := range items {
		if _, ok := s.properties[item.PropertyID]; !ok {
			errs = append(errs, fmt.Sprintf("property %s: not found", item.PropertyID))
			continue
		}
		s.embeddings[item.PropertyID] = append([]float32(nil), item.Embedding...)
		success++
	}
	return success, errs
}

// Get implements ConversationStore
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *conv
	cp.Messages = append(model.Messages{}, conv.Messages...)
	return &cp, nil
}

// Append implements ConversationStore
func (s *MemoryStore) Append(_ context.Context, sessionID string, msgs ...model.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	conv, ok := s.conversations[sessionID]
	if !ok {
		conv = &model.Conversation{SessionID: sessionID, IsActive: true, CreatedAt: now}
		s.conversations[sessionID] = conv
	}
	conv.Messages = append(conv.Messages, msgs...)
	conv.UpdatedAt = now
	return nil
}

// Delete implements ConversationStore
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, sessionID)
	return nil
}
