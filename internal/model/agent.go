package model

import "time"

// QueryRequest represents a natural-language agent query
type QueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId,omitempty"`
}

// QueryResponse is the combined payload returned for an agent query
type QueryResponse struct {
	Success        bool       `json:"success"`
	Query          string     `json:"query"`
	Response       string     `json:"response"`
	Properties     []Property `json:"properties"`
	FiltersApplied Filter     `json:"filtersApplied"`
	TotalFound     int        `json:"totalFound"`
	SessionID      string     `json:"sessionId"`
	Timestamp      string     `json:"timestamp"`
}

// ContactRequest asks the agent to reach a listing's owner
type ContactRequest struct {
	PropertyID string `json:"propertyId"`
	Message    string `json:"message,omitempty"`
}

// ContactResult is the outcome of a (simulated) owner contact
type ContactResult struct {
	Success          bool      `json:"success"`
	Message          string    `json:"message"`
	ContactTime      time.Time `json:"contactTime"`
	FollowUpRequired bool      `json:"followUpRequired"`
}

// ContactResponse wraps a contact result with the property it concerns
type ContactResponse struct {
	Success       bool            `json:"success"`
	Property      PropertySummary `json:"property"`
	ContactResult *ContactResult  `json:"contactResult"`
	Timestamp     string          `json:"timestamp"`
}

// RecommendationRequest carries explicit preferences, no free text
type RecommendationRequest struct {
	Budget       int64        `json:"budget,omitempty"`
	PropertyType PropertyType `json:"propertyType,omitempty"`
	Location     string       `json:"location,omitempty"`
}

// RecommendationResponse lists the cheapest matching listings
type RecommendationResponse struct {
	Success         bool       `json:"success"`
	Recommendations []Property `json:"recommendations"`
	Count           int        `json:"count"`
	Message         string     `json:"message"`
}

// PropertyListResponse is returned by catalog listing endpoints
type PropertyListResponse struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Properties []Property `json:"properties"`
	Timestamp  string     `json:"timestamp"`
}

// EmbeddingBatchRequest represents a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem represents a single description embedding for a property
type EmbeddingItem struct {
	PropertyID string    `json:"propertyId" binding:"required"`
	Embedding  []float32 `json:"embedding" binding:"required"`
}

// EmbeddingBatchResponse represents the response for batch embedding update
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// ErrorResponse is the body of every user-visible failure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
