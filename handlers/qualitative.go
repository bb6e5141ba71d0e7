package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"ecom-insights-service/datasets"
	"ecom-insights-service/services"
)

// QualitativeHandler serves the cross-platform connector echoes and the
// combined dashboard. Loads are best-effort: a missing dataset contributes
// zeros rather than failing the whole dashboard.
type QualitativeHandler struct {
	store *datasets.Store
}

func NewQualitativeHandler(store *datasets.Store) *QualitativeHandler {
	return &QualitativeHandler{store: store}
}

func (h *QualitativeHandler) inputs() services.DashboardInputs {
	in := services.DashboardInputs{}
	var err error
	if in.Shopify, err = h.store.Orders(); err != nil {
		log.Warnf("dashboard data source unavailable: %v", err)
	}
	if in.WooCommerce, err = h.store.WooCommerce(); err != nil {
		log.Warnf("dashboard data source unavailable: %v", err)
	}
	if in.Products, err = h.store.Products(); err != nil {
		log.Warnf("dashboard data source unavailable: %v", err)
	}
	if in.MetaAds, err = h.store.MetaAds(); err != nil {
		log.Warnf("dashboard data source unavailable: %v", err)
	}
	if in.GoogleAds, err = h.store.GoogleAds(); err != nil {
		log.Warnf("dashboard data source unavailable: %v", err)
	}
	if in.PinterestAds, err = h.store.PinterestAds(); err != nil {
		log.Warnf("dashboard data source unavailable: %v", err)
	}
	if in.GoogleAnalytics, err = h.store.GoogleAnalytics(); err != nil {
		log.Warnf("dashboard data source unavailable: %v", err)
	}
	return in
}

// Connectors echoes per-platform connector summaries.
func (h *QualitativeHandler) Connectors(c *gin.Context) {
	in := h.inputs()

	shopifyOrders := 0
	shopifyRevenue := 0.0
	if in.Shopify != nil {
		shopifyOrders = len(in.Shopify.Orders)
		for _, order := range in.Shopify.Orders {
			shopifyRevenue += order.Total
		}
	}

	wooAnalytics := map[string]any{}
	if in.WooCommerce != nil && in.WooCommerce.Analytics != nil {
		wooAnalytics = in.WooCommerce.Analytics
	}

	gaOverview := map[string]any{}
	gaConversions := map[string]any{}
	if in.GoogleAnalytics != nil {
		if m, ok := in.GoogleAnalytics["website_overview"].(map[string]any); ok {
			gaOverview = m
		}
		if m, ok := in.GoogleAnalytics["conversions"].(map[string]any); ok {
			gaConversions = m
		}
	}

	adConnector := func(name, platform string, ads *datasets.AdPlatformData) gin.H {
		campaigns := 0
		if ads != nil {
			campaigns = len(ads.Campaigns)
		}
		return gin.H{
			"name":      name,
			"type":      "advertising",
			"platform":  platform,
			"status":    "connected",
			"campaigns": campaigns,
			"spend":     ads.PerfNumber("total_spend"),
			"revenue":   ads.PerfNumber("total_revenue"),
			"roas":      ads.PerfNumber("overall_roas"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"connectors": []gin.H{
		adConnector("Meta Ads", "Facebook & Instagram", in.MetaAds),
		adConnector("Google Ads", "Google", in.GoogleAds),
		{
			"name":            "Google Analytics",
			"type":            "analytics",
			"platform":        "Google",
			"status":          "connected",
			"total_users":     valueOr(gaOverview, "total_users", 0),
			"total_sessions":  valueOr(gaOverview, "total_sessions", 0),
			"conversion_rate": valueOr(gaConversions, "conversion_rate", "0%"),
		},
		adConnector("Pinterest Ads", "Pinterest", in.PinterestAds),
		{
			"name":          "Shopify",
			"type":          "ecommerce",
			"platform":      "Shopify",
			"status":        "connected",
			"orders":        shopifyOrders,
			"total_revenue": shopifyRevenue,
		},
		{
			"name":          "WooCommerce",
			"type":          "ecommerce",
			"platform":      "WordPress",
			"status":        "connected",
			"orders":        valueOr(wooAnalytics, "total_orders", 0),
			"total_revenue": valueOr(wooAnalytics, "total_revenue", 0),
			"products":      valueOr(wooAnalytics, "total_products", 0),
		},
	}})
}

// Dashboard returns the combined cross-dataset dashboard.
func (h *QualitativeHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, services.BuildDashboard(h.inputs()))
}

func valueOr(m map[string]any, key string, fallback any) any {
	if m != nil {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return fallback
}
