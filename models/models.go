package models

import (
	"time"

	"ecom-insights-service/services"
)

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// OverallReport is the sentiment distribution response.
type OverallReport struct {
	OverallSentiment map[string]float64 `json:"overall_sentiment"`
	TotalReviews     int                `json:"total_reviews"`
	LastUpdated      time.Time          `json:"last_updated"`
	SentimentCounts  map[string]int     `json:"sentiment_counts"`
}

// DetailReport is the fine-grained sentiment detail response.
type DetailReport struct {
	OverallSentimentDetail map[string]services.DetailStat `json:"overall_sentiment_detail"`
	TotalReviews           int                            `json:"total_reviews"`
	LastUpdated            time.Time                      `json:"last_updated"`
}

// TrendReport wraps the monthly sentiment trend.
type TrendReport struct {
	Trends []services.TrendPoint `json:"trends"`
}

// ChatRequest is the body of both chat endpoints.
type ChatRequest struct {
	Message             string              `json:"message" binding:"required"`
	ConversationHistory []map[string]string `json:"conversation_history"`
}

// KnowledgeBaseUpdate replaces a knowledge base text.
type KnowledgeBaseUpdate struct {
	Content string `json:"content" binding:"required"`
}

// InstructionsUpdate replaces the bot instructions.
type InstructionsUpdate struct {
	Instructions string `json:"instructions" binding:"required"`
}

// AgentChatResponse is the LLM chat response with citations.
type AgentChatResponse struct {
	Response        string   `json:"response"`
	Sources         []string `json:"sources"`
	Model           string   `json:"model,omitempty"`
	DataContextSize int      `json:"data_context_size,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// Connector is one entry of the bot connector status echo.
type Connector struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Records     int    `json:"records"`
	Description string `json:"description,omitempty"`
}
