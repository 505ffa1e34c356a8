package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Routes bundles every handler mounted by the HTTP server
type Routes struct {
	Agent         *AgentHandler
	Properties    *PropertyHandler
	Conversations *ConversationHandler
	Embeddings    *EmbeddingHandler
	Health        *HealthHandler
	Metrics       http.Handler
}

// Register mounts the service endpoints on router
func (r Routes) Register(router *gin.Engine) {
	router.GET("/health", r.Health.Health)
	router.GET("/version", r.Health.Version)
	if r.Metrics != nil {
		router.GET("/metrics", gin.WrapH(r.Metrics))
	}

	apiV1 := router.Group("/api/v1")
	{
		agent := apiV1.Group("/agent")
		agent.POST("/query", r.Agent.Query)
		agent.POST("/contact-owner", r.Agent.ContactOwner)
		agent.POST("/recommendations", r.Agent.Recommendations)

		apiV1.GET("/properties", r.Properties.List)
		apiV1.POST("/properties", r.Properties.Create)
		apiV1.GET("/properties/:id", r.Properties.Get)
		apiV1.POST("/properties/embeddings/batch", r.Embeddings.BatchUpdate)

		apiV1.GET("/conversations/:sessionId", r.Conversations.Get)
		apiV1.DELETE("/conversations/:sessionId", r.Conversations.Delete)
	}
}
