package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"

	"ecom-insights-service/config"
)

// RequestTimeout bounds the outbound chat-completion call.
const RequestTimeout = 30 * time.Second

const systemPrompt = `You are an expert E-commerce AI Assistant for Saturnin.

You have access to real-time data from multiple sources:
- Product catalog
- Shopify orders
- DHL shipping tracking
- Marketing strategies
- Meta Ads (Facebook/Instagram) campaigns
- Google Ads campaigns

Your role:
1. Analyze the provided data carefully
2. Answer questions with specific numbers, dates, and details
3. Provide actionable insights and recommendations
4. Be concise but comprehensive
5. Always cite specific data points when making statements

Context from connected data sources:
%s

Remember: Always base your answers on the actual data provided above.`

type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClient builds a chat-completion client against the integration proxy's
// OpenAI-compatible endpoint.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.OpenAIAPIKey,
		model:   cfg.OpenAIModel,
		baseURL: strings.TrimRight(cfg.IntegrationProxyURL, "/") + "/openai/v1",
		client:  &http.Client{Timeout: RequestTimeout},
	}
}

// Model reports the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// ChatWithContext runs the two-turn prompt: the persona system message with
// the assembled data context embedded, then the raw user message.
func (c *Client) ChatWithContext(ctx context.Context, message, dataContext string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: fmt.Sprintf(systemPrompt, dataContext)},
			{Role: "user", Content: message},
		},
		Temperature: 0.3,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat completion response: %w", err)
	}

	if resp.StatusCode >= 400 {
		log.Errorf("chat completion returned %d: %s", resp.StatusCode, string(respBytes))
		return "", fmt.Errorf("chat completion returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBytes, &chatResp); err != nil {
		return "", fmt.Errorf("parse chat completion response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("chat completion error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// WithCitations appends the source citation footer, one source per line.
func WithCitations(text string, sources []string) string {
	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n📚 **Sources Used:**\n")
	lines := make([]string, 0, len(sources))
	for _, source := range sources {
		lines = append(lines, "- "+source)
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
