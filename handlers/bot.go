package handlers

import (
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"ecom-insights-service/datasets"
	"ecom-insights-service/models"
	"ecom-insights-service/services"
)

const supportApology = "I apologize, but I'm having trouble processing your request. Please try again or contact our support team at support@saturnin.com"

// BotHandler serves the deterministic support bot and its connectors.
type BotHandler struct {
	store *datasets.Store
	state *services.BotState
}

func NewBotHandler(store *datasets.Store, state *services.BotState) *BotHandler {
	return &BotHandler{store: store, state: state}
}

// KnowledgeBase returns the current bot knowledge base text.
func (h *BotHandler) KnowledgeBase(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"knowledge_base": h.state.KnowledgeBase()})
}

// UpdateKnowledgeBase replaces the bot knowledge base text.
func (h *BotHandler) UpdateKnowledgeBase(c *gin.Context) {
	var update models.KnowledgeBaseUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	h.state.SetKnowledgeBase(update.Content)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Knowledge base updated"})
}

// Instructions returns the current bot instructions.
func (h *BotHandler) Instructions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"instructions": h.state.Instructions()})
}

// UpdateInstructions replaces the bot instructions.
func (h *BotHandler) UpdateInstructions(c *gin.Context) {
	var update models.InstructionsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instructions is required"})
		return
	}
	h.state.SetInstructions(update.Instructions)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bot instructions updated"})
}

// Products returns the catalog, one product by id, or a text search.
func (h *BotHandler) Products(c *gin.Context) {
	catalog, err := h.store.Products()
	if err != nil {
		respondDatasetError(c, err)
		return
	}

	if productID := c.Query("product_id"); productID != "" {
		for _, p := range catalog.Products {
			if strings.EqualFold(p.ID, productID) {
				c.JSON(http.StatusOK, gin.H{"product": p})
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if search := c.Query("search"); search != "" {
		needle := strings.ToLower(search)
		matched := []datasets.Product{}
		for _, p := range catalog.Products {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Category), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				matched = append(matched, p)
			}
		}
		c.JSON(http.StatusOK, gin.H{"products": matched, "count": len(matched)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": catalog.Products, "count": len(catalog.Products)})
}

// Order returns one Shopify order by order number.
func (h *BotHandler) Order(c *gin.Context) {
	orderNumber := c.Param("order_number")
	orders, err := h.store.Orders()
	if err != nil {
		respondDatasetError(c, err)
		return
	}
	for _, order := range orders.Orders {
		if strings.EqualFold(order.OrderNumber, orderNumber) {
			c.JSON(http.StatusOK, gin.H{"order": order})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Order " + orderNumber + " not found"})
}

// Tracking returns one DHL shipment by tracking number.
func (h *BotHandler) Tracking(c *gin.Context) {
	trackingNumber := c.Param("tracking_number")
	shipments, err := h.store.Shipments()
	if err != nil {
		respondDatasetError(c, err)
		return
	}
	if shipment := services.FindShipment(shipments, trackingNumber); shipment != nil {
		c.JSON(http.StatusOK, gin.H{"shipment": shipment})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Tracking number " + trackingNumber + " not found"})
}

// ConnectorsStatus echoes the record count of each connector dataset.
func (h *BotHandler) ConnectorsStatus(c *gin.Context) {
	catalog, err := h.store.Products()
	if err != nil {
		respondDatasetError(c, err)
		return
	}
	orders, err := h.store.Orders()
	if err != nil {
		respondDatasetError(c, err)
		return
	}
	shipments, err := h.store.Shipments()
	if err != nil {
		respondDatasetError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connectors": []models.Connector{
		{Name: "Product Catalog", Type: datasets.FileProducts, Status: "connected", Records: len(catalog.Products)},
		{Name: "Shopify Orders", Type: datasets.FileShopify, Status: "connected", Records: len(orders.Orders)},
		{Name: "DHL Tracking", Type: datasets.FileDHL, Status: "connected", Records: len(shipments.Shipments)},
	}})
}

// Chat answers with the deterministic formatter; errors are surfaced in-band
// so the chat UI always gets a reply.
func (h *BotHandler) Chat(c *gin.Context) {
	var chat models.ChatRequest
	if err := c.ShouldBindJSON(&chat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	orders, err := h.store.Orders()
	if err == nil {
		var shipments *datasets.DHLData
		var products *datasets.ProductCatalog
		if shipments, err = h.store.Shipments(); err == nil {
			products, err = h.store.Products()
		}
		if err == nil {
			reply := services.BotReplyFor(chat.Message, orders, shipments, products, h.state.KnowledgeBase())
			log.WithFields(log.Fields{"data_source": reply.DataSource}).Info("bot.chat")
			c.JSON(http.StatusOK, reply)
			return
		}
	}

	log.Errorf("bot chat error: %v", err)
	c.JSON(http.StatusOK, gin.H{"response": supportApology, "error": err.Error()})
}
