package handlers

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"ecom-insights-service/datasets"
	"ecom-insights-service/models"
	"ecom-insights-service/openai"
	"ecom-insights-service/services"
)

// AgentHandler serves the LLM-backed e-commerce agent.
type AgentHandler struct {
	store *datasets.Store
	state *services.BotState
	llm   *openai.Client
}

func NewAgentHandler(store *datasets.Store, state *services.BotState, llm *openai.Client) *AgentHandler {
	return &AgentHandler{store: store, state: state, llm: llm}
}

// sources loads every dataset the context assembler can use. A failed load
// leaves that entry nil so its triggers still fire with empty blocks, the
// same best-effort contract the chat UI expects.
func (h *AgentHandler) sources() *services.DataSources {
	d := &services.DataSources{}
	var err error
	if d.Products, err = h.store.Products(); err != nil {
		log.Warnf("agent data source unavailable: %v", err)
	}
	if d.Orders, err = h.store.Orders(); err != nil {
		log.Warnf("agent data source unavailable: %v", err)
	}
	if d.Shipments, err = h.store.Shipments(); err != nil {
		log.Warnf("agent data source unavailable: %v", err)
	}
	if d.Strategies, err = h.store.Strategies(); err != nil {
		log.Warnf("agent data source unavailable: %v", err)
	}
	if d.MetaAds, err = h.store.MetaAds(); err != nil {
		log.Warnf("agent data source unavailable: %v", err)
	}
	if d.GoogleAds, err = h.store.GoogleAds(); err != nil {
		log.Warnf("agent data source unavailable: %v", err)
	}
	return d
}

// KnowledgeBase returns the agent knowledge base text.
func (h *AgentHandler) KnowledgeBase(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"knowledge_base": h.state.AgentKnowledgeBase()})
}

// UpdateKnowledgeBase replaces the agent knowledge base text.
func (h *AgentHandler) UpdateKnowledgeBase(c *gin.Context) {
	var update models.KnowledgeBaseUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	h.state.SetAgentKnowledgeBase(update.Content)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Knowledge base updated"})
}

// Chat assembles a context from the fired triggers, calls the LLM, and
// returns the completion with citations. LLM failures stay in-band: the
// handler answers 200 with an apology so the chat UI can render it.
func (h *AgentHandler) Chat(c *gin.Context) {
	var chat models.ChatRequest
	if err := c.ShouldBindJSON(&chat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	context, sources := services.AssembleContext(chat.Message, h.sources(), h.state.AgentKnowledgeBase())
	log.WithFields(log.Fields{
		"sources":      sources,
		"context_size": len(context),
	}).Info("agent.chat")

	response, err := h.llm.ChatWithContext(c.Request.Context(), chat.Message, context)
	if err != nil {
		log.Errorf("agent chat error: %v", err)
		c.JSON(http.StatusOK, models.AgentChatResponse{
			Response: fmt.Sprintf("I apologize, but I encountered an error processing your request: %v. Please try again or rephrase your question.", err),
			Sources:  []string{},
			Error:    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.AgentChatResponse{
		Response:        openai.WithCitations(response, sources),
		Sources:         sources,
		Model:           h.llm.Model(),
		DataContextSize: len(context),
	})
}

// Connectors echoes the record count of each agent data source.
func (h *AgentHandler) Connectors(c *gin.Context) {
	d := h.sources()

	c.JSON(http.StatusOK, gin.H{"connectors": []models.Connector{
		{Name: "Product Catalog", Type: datasets.FileProducts, Status: "connected",
			Records: lenProducts(d.Products), Description: "Product inventory, prices, and details"},
		{Name: "Shopify Orders", Type: datasets.FileShopify, Status: "connected",
			Records: lenOrders(d.Orders), Description: "Customer orders and purchase history"},
		{Name: "DHL Tracking", Type: datasets.FileDHL, Status: "connected",
			Records: lenShipments(d.Shipments), Description: "Shipment tracking and delivery status"},
		{Name: "Marketing Strategies", Type: datasets.FileStrategies, Status: "connected",
			Records: lenStrategies(d.Strategies), Description: "Marketing plans and campaign strategies"},
		{Name: "Meta Ads", Type: datasets.FileMetaAds, Status: "connected",
			Records: lenCampaigns(d.MetaAds), Description: "Facebook & Instagram ad campaigns"},
		{Name: "Google Ads", Type: datasets.FileGoogleAds, Status: "connected",
			Records: lenCampaigns(d.GoogleAds), Description: "Google Ads campaigns and performance"},
	}})
}

// Analytics returns the agent's summary analytics.
func (h *AgentHandler) Analytics(c *gin.Context) {
	products, err := h.store.Products()
	if err != nil {
		respondDatasetError(c, err)
		return
	}
	orders, err := h.store.Orders()
	if err != nil {
		respondDatasetError(c, err)
		return
	}
	meta, err := h.store.MetaAds()
	if err != nil {
		respondDatasetError(c, err)
		return
	}
	google, err := h.store.GoogleAds()
	if err != nil {
		respondDatasetError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.BuildAgentAnalytics(products, orders, meta, google))
}

func lenProducts(d *datasets.ProductCatalog) int {
	if d == nil {
		return 0
	}
	return len(d.Products)
}

func lenOrders(d *datasets.ShopifyData) int {
	if d == nil {
		return 0
	}
	return len(d.Orders)
}

func lenShipments(d *datasets.DHLData) int {
	if d == nil {
		return 0
	}
	return len(d.Shipments)
}

func lenStrategies(d *datasets.StrategyData) int {
	if d == nil {
		return 0
	}
	return len(d.Strategies)
}

func lenCampaigns(d *datasets.AdPlatformData) int {
	if d == nil {
		return 0
	}
	return len(d.Campaigns)
}
