package services

import (
	"fmt"
	"strconv"
	"strings"

	"ecom-insights-service/datasets"
)

// Product-hint vocabulary for the deterministic bot's catalog search branch.
var productHints = []string{"product", "headphone", "watch", "chair", "webcam", "tea", "charger", "price", "buy"}

// BotReply is the deterministic bot response; DataSource names the branch
// that produced it.
type BotReply struct {
	Response       string `json:"response"`
	DataSource     string `json:"data_source"`
	OrderNumber    string `json:"order_number,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	ProductsFound  int    `json:"products_found,omitempty"`
}

// BotReplyFor renders a templated support reply from the first matching
// branch: order lookup by ORD- token, shipment lookup by DHL- token, product
// search by hint vocabulary, then the knowledge base with usage hints.
func BotReplyFor(message string, orders *datasets.ShopifyData, shipments *datasets.DHLData, products *datasets.ProductCatalog, knowledgeBase string) BotReply {
	tokens := strings.Fields(message)

	if orderNum := tokenWithPrefix(tokens, "ORD-"); orderNum != "" && orders != nil {
		if order := findOrder(orders, orderNum); order != nil {
			return orderReply(order, orderNum, shipments)
		}
	}

	if trackingNum := tokenWithPrefix(tokens, "DHL-"); trackingNum != "" && shipments != nil {
		if shipment := FindShipment(shipments, trackingNum); shipment != nil {
			return shipmentReply(shipment, trackingNum)
		}
	}

	lower := strings.ToLower(message)
	if containsAny(lower, productHints) && products != nil {
		if reply, ok := productReply(lower, products); ok {
			return reply
		}
	}

	return BotReply{
		Response: fmt.Sprintf(`Thank you for contacting Saturnin! 👋

%s

To help you better, you can:
- Check order status by providing your order number (e.g., ORD-2024-001)
- Track your shipment with tracking number (e.g., DHL-2024-TRK-001)
- Ask about product information

How can I assist you today?`, knowledgeBase),
		DataSource: "knowledge_base",
	}
}

func tokenWithPrefix(tokens []string, prefix string) string {
	for _, token := range tokens {
		token = strings.TrimRight(token, ".,!?;:)")
		if strings.HasPrefix(strings.ToUpper(token), prefix) {
			return token
		}
	}
	return ""
}

func findOrder(orders *datasets.ShopifyData, orderNum string) *datasets.Order {
	for i := range orders.Orders {
		if strings.EqualFold(orders.Orders[i].OrderNumber, orderNum) {
			return &orders.Orders[i]
		}
	}
	return nil
}

// FindShipment looks up a shipment by tracking number, case-insensitively.
func FindShipment(shipments *datasets.DHLData, trackingNum string) *datasets.Shipment {
	for i := range shipments.Shipments {
		if strings.EqualFold(shipments.Shipments[i].TrackingNumber, trackingNum) {
			return &shipments.Shipments[i]
		}
	}
	return nil
}

func orderReply(order *datasets.Order, orderNum string, shipments *datasets.DHLData) BotReply {
	items := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, fmt.Sprintf("%s (x%d)", item.ProductName, item.Quantity))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello! I found your order %s 📦\n\n", order.OrderNumber)
	fmt.Fprintf(&b, "**Status:** %s\n", Humanize(order.Status))
	fmt.Fprintf(&b, "**Order Date:** %s\n", firstChars(order.OrderDate, 10))
	fmt.Fprintf(&b, "**Items:** %s\n", strings.Join(items, ", "))
	fmt.Fprintf(&b, "**Total:** $%s %s\n\n", formatAmount(order.Total), order.Currency)

	if order.TrackingNumber != "" {
		fmt.Fprintf(&b, "**Tracking:** %s\n", order.TrackingNumber)
		if shipments != nil {
			if shipment := FindShipment(shipments, order.TrackingNumber); shipment != nil {
				fmt.Fprintf(&b, "**Shipping Status:** %s\n", Humanize(shipment.Status))
				if shipment.EstimatedDelivery != "" {
					fmt.Fprintf(&b, "**Estimated Delivery:** %s\n", firstChars(shipment.EstimatedDelivery, 10))
				}
			}
		}
	}

	b.WriteString("\nIs there anything else I can help you with?")
	return BotReply{
		Response:    b.String(),
		DataSource:  "shopify_connector",
		OrderNumber: orderNum,
	}
}

func shipmentReply(shipment *datasets.Shipment, trackingNum string) BotReply {
	eta := "N/A"
	if shipment.EstimatedDelivery != "" {
		eta = firstChars(shipment.EstimatedDelivery, 10)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📦 Tracking Information for %s\n\n", trackingNum)
	fmt.Fprintf(&b, "**Status:** %s\n", Humanize(shipment.Status))
	fmt.Fprintf(&b, "**Service:** %s\n", shipment.ServiceType)
	fmt.Fprintf(&b, "**From:** %s, %s\n", shipment.Origin.City, shipment.Origin.State)
	fmt.Fprintf(&b, "**To:** %s, %s\n", shipment.Destination.City, shipment.Destination.State)
	fmt.Fprintf(&b, "**Shipped:** %s\n", firstChars(shipment.ShippedDate, 10))
	fmt.Fprintf(&b, "**Estimated Delivery:** %s\n\n", eta)
	b.WriteString("**Latest Update:**\n")
	if len(shipment.Events) > 0 {
		latest := shipment.Events[len(shipment.Events)-1]
		fmt.Fprintf(&b, "%s - %s (%s)\n", firstChars(latest.Timestamp, 10), latest.Description, latest.Location)
	}
	b.WriteString("\nWould you like more details about this shipment?")

	return BotReply{
		Response:       b.String(),
		DataSource:     "dhl_connector",
		TrackingNumber: trackingNum,
	}
}

func productReply(lowerMessage string, products *datasets.ProductCatalog) (BotReply, bool) {
	terms := strings.Fields(lowerMessage)
	var matching []datasets.Product
	for _, p := range products.Products {
		text := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
		for _, term := range terms {
			if len(term) > 3 && strings.Contains(text, term) {
				matching = append(matching, p)
				break
			}
		}
	}
	if len(matching) == 0 {
		return BotReply{}, false
	}

	var b strings.Builder
	b.WriteString("I found these products that might interest you:\n\n")
	shown := matching
	if len(shown) > 3 {
		shown = shown[:3]
	}
	for _, p := range shown {
		fmt.Fprintf(&b, "**%s** - $%s\n", p.Name, formatAmount(p.Price))
		fmt.Fprintf(&b, "%s...\n", firstChars(p.Description, 100))
		fmt.Fprintf(&b, "Stock: %d units | Rating: %s⭐\n\n", p.Stock, formatAmount(p.Rating))
	}
	b.WriteString("Would you like more information about any of these products?")

	return BotReply{
		Response:      b.String(),
		DataSource:    "product_connector",
		ProductsFound: len(matching),
	}, true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
