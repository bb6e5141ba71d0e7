package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"ecom-insights-service/datasets"
)

// DataSources holds the loaded datasets the context assembler can draw from.
// A nil entry means the dataset failed to load; its blocks render empty.
type DataSources struct {
	Products   *datasets.ProductCatalog
	Orders     *datasets.ShopifyData
	Shipments  *datasets.DHLData
	Strategies *datasets.StrategyData
	MetaAds    *datasets.AdPlatformData
	GoogleAds  *datasets.AdPlatformData
}

// ContextTrigger attaches one labeled dataset block to the LLM context when
// any of its keywords appears in the lowercased message.
type ContextTrigger struct {
	Source   string
	Keywords []string
	Build    func(d *DataSources) string
}

// The trigger table is data so new sources can be added without touching the
// assembler. Order is part of the output contract: fired triggers contribute
// blocks in table order.
var contextTriggers = []ContextTrigger{
	{
		Source:   "product.json",
		Keywords: []string{"product", "inventory", "stock", "price", "item", "catalog"},
		Build: func(d *DataSources) string {
			products := []datasets.Product{}
			if d.Products != nil {
				products = d.Products.Products
			}
			head := products
			if len(head) > 5 {
				head = head[:5]
			}
			return fmt.Sprintf("PRODUCT CATALOG (%d products):\n%s", len(products), prettyJSON(head))
		},
	},
	{
		Source:   "shopify_demo.json",
		Keywords: []string{"order", "purchase", "shopify", "customer", "ord-"},
		Build: func(d *DataSources) string {
			orders := []datasets.Order{}
			if d.Orders != nil {
				orders = d.Orders.Orders
			}
			return fmt.Sprintf("SHOPIFY ORDERS (%d orders):\n%s", len(orders), prettyJSON(orders))
		},
	},
	{
		Source:   "dhl_demo.json",
		Keywords: []string{"ship", "delivery", "track", "dhl", "dhl-"},
		Build: func(d *DataSources) string {
			shipments := []datasets.Shipment{}
			if d.Shipments != nil {
				shipments = d.Shipments.Shipments
			}
			return fmt.Sprintf("DHL TRACKING (%d shipments):\n%s", len(shipments), prettyJSON(shipments))
		},
	},
	{
		Source:   "strategies.json",
		Keywords: []string{"strategy", "marketing", "campaign", "plan", "tactic", "goal"},
		Build: func(d *DataSources) string {
			strategies := []map[string]any{}
			if d.Strategies != nil {
				strategies = d.Strategies.Strategies
			}
			return fmt.Sprintf("MARKETING STRATEGIES (%d strategies):\n%s", len(strategies), prettyJSON(strategies))
		},
	},
	{
		Source:   "meta_ads.json",
		Keywords: []string{"meta", "facebook", "instagram", "social", "meta-"},
		Build:    func(d *DataSources) string { return adsBlock("META ADS", d.MetaAds) },
	},
	{
		Source:   "google_ads.json",
		Keywords: []string{"google", "search", "ppc", "adwords", "google-"},
		Build:    func(d *DataSources) string { return adsBlock("GOOGLE ADS", d.GoogleAds) },
	},
}

// Performance queries fall back to the ad platform overall numbers for any
// platform not already attached by its own trigger.
var performanceKeywords = []string{"performance", "roi", "roas", "revenue", "sales", "conversion", "analytics"}

// AssembleContext classifies the message against the trigger table and joins
// the fired blocks into a single prompt context. When nothing fires, the
// knowledge base is the sole block. Returns the context and the source tags.
func AssembleContext(message string, d *DataSources, knowledgeBase string) (string, []string) {
	lower := strings.ToLower(message)
	var parts []string
	sources := []string{}

	for _, trigger := range contextTriggers {
		if !containsAny(lower, trigger.Keywords) {
			continue
		}
		parts = append(parts, trigger.Build(d))
		sources = append(sources, trigger.Source)
	}

	if containsAny(lower, performanceKeywords) {
		if !containsString(sources, "meta_ads.json") {
			parts = append(parts, fmt.Sprintf("META ADS PERFORMANCE:\n%s", prettyJSON(overallPerf(d.MetaAds))))
			sources = append(sources, "meta_ads.json")
		}
		if !containsString(sources, "google_ads.json") {
			parts = append(parts, fmt.Sprintf("GOOGLE ADS PERFORMANCE:\n%s", prettyJSON(overallPerf(d.GoogleAds))))
			sources = append(sources, "google_ads.json")
		}
	}

	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("KNOWLEDGE BASE:\n%s", knowledgeBase))
		sources = append(sources, "knowledge_base")
	}

	return strings.Join(parts, "\n\n---\n\n"), sources
}

func adsBlock(label string, ads *datasets.AdPlatformData) string {
	campaigns := []map[string]any{}
	if ads != nil {
		campaigns = ads.Campaigns
	}
	return fmt.Sprintf("%s CAMPAIGNS (%d campaigns):\n%s\n\nOVERALL PERFORMANCE:\n%s",
		label, len(campaigns), prettyJSON(campaigns), prettyJSON(overallPerf(ads)))
}

func overallPerf(ads *datasets.AdPlatformData) map[string]any {
	if ads == nil || ads.OverallPerformance == nil {
		return map[string]any{}
	}
	return ads.OverallPerformance
}

func prettyJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
