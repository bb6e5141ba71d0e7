package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"ecom-insights-service/datasets"
)

// DashboardOverview is the combined storefront + advertising headline block.
type DashboardOverview struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalOrders      int     `json:"total_orders"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	TotalCustomers   int     `json:"total_customers"`
	TotalProducts    int     `json:"total_products"`
	TotalStock       int     `json:"total_stock"`
	LowStockProducts int     `json:"low_stock_products"`
	TotalAdSpend     float64 `json:"total_ad_spend"`
	OverallROAS      float64 `json:"overall_roas"`
}

// TopProduct ranks a catalog product by a synthetic revenue score the
// frontend charts depend on (price * reviews_count / 10).
type TopProduct struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Stock   int     `json:"stock"`
}

type ChannelRevenue struct {
	Channel string  `json:"channel"`
	Revenue float64 `json:"revenue"`
}

type MonthTrend struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  float64 `json:"orders"`
}

type ConversionMetrics struct {
	WebsiteVisitors any `json:"website_visitors"`
	ConversionRate  any `json:"conversion_rate"`
	BounceRate      any `json:"bounce_rate"`
}

// Dashboard is the full qualitative dashboard payload.
type Dashboard struct {
	Overview          DashboardOverview `json:"overview"`
	OrderStatuses     map[string]int    `json:"order_statuses"`
	TopProducts       []TopProduct      `json:"top_products"`
	RevenueByChannel  []ChannelRevenue  `json:"revenue_by_channel"`
	TrafficSources    []any             `json:"traffic_sources"`
	MonthlyTrend      []MonthTrend      `json:"monthly_trend"`
	ConversionMetrics ConversionMetrics `json:"conversion_metrics"`
}

// DashboardInputs are the datasets the dashboard aggregates. Nil entries
// contribute zeros, matching the best-effort loading of the endpoint.
type DashboardInputs struct {
	Shopify         *datasets.ShopifyData
	WooCommerce     *datasets.WooData
	Products        *datasets.ProductCatalog
	MetaAds         *datasets.AdPlatformData
	GoogleAds       *datasets.AdPlatformData
	PinterestAds    *datasets.AdPlatformData
	GoogleAnalytics map[string]any
}

// BuildDashboard combines storefront orders, catalog stock, ad platform
// performance and site analytics into the fixed dashboard shape. The
// formulas are demo contracts; the frontend depends on them exactly.
func BuildDashboard(in DashboardInputs) *Dashboard {
	var shopifyOrders []datasets.Order
	if in.Shopify != nil {
		shopifyOrders = in.Shopify.Orders
	}
	var wooOrders []map[string]any
	wooAnalytics := map[string]any{}
	var wooCustomers []map[string]any
	if in.WooCommerce != nil {
		wooOrders = in.WooCommerce.Orders
		wooCustomers = in.WooCommerce.Customers
		if in.WooCommerce.Analytics != nil {
			wooAnalytics = in.WooCommerce.Analytics
		}
	}

	totalOrders := len(shopifyOrders) + len(wooOrders)

	shopifyRevenue := decimal.Zero
	for _, order := range shopifyOrders {
		shopifyRevenue = shopifyRevenue.Add(decimal.NewFromFloat(order.Total))
	}
	wooRevenue := decimal.NewFromFloat(datasets.Number(wooAnalytics, "total_revenue"))
	totalRevenue := shopifyRevenue.Add(wooRevenue)

	avgOrderValue := decimal.Zero
	if totalOrders > 0 {
		avgOrderValue = totalRevenue.Div(decimal.NewFromInt(int64(totalOrders)))
	}

	var products []datasets.Product
	if in.Products != nil {
		products = in.Products.Products
	}
	totalStock := 0
	lowStock := 0
	for _, p := range products {
		totalStock += p.Stock
		if p.Stock < 50 {
			lowStock++
		}
	}

	// Unique Shopify customers by email, plus the WooCommerce customer list.
	emails := make(map[string]bool)
	for _, order := range shopifyOrders {
		emails[order.Customer.Email] = true
	}
	totalCustomers := len(emails) + len(wooCustomers)

	adSpend := in.MetaAds.PerfNumber("total_spend") +
		in.GoogleAds.PerfNumber("total_spend") +
		in.PinterestAds.PerfNumber("total_spend")
	adRevenue := in.MetaAds.PerfNumber("total_revenue") +
		in.GoogleAds.PerfNumber("total_revenue") +
		in.PinterestAds.PerfNumber("total_revenue")
	roas := 0.0
	if adSpend > 0 {
		roas = adRevenue / adSpend
	}

	statuses := make(map[string]int)
	for _, order := range shopifyOrders {
		status := order.Status
		if status == "" {
			status = "unknown"
		}
		statuses[status]++
	}
	for _, order := range wooOrders {
		status, _ := order["status"].(string)
		if status == "" {
			status = "unknown"
		}
		statuses[status]++
	}

	top := make([]TopProduct, 0, len(products))
	for _, p := range products {
		top = append(top, TopProduct{
			Name:    p.Name,
			Revenue: p.Price * float64(p.ReviewsCount) / 10,
			Stock:   p.Stock,
		})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })
	if len(top) > 5 {
		top = top[:5]
	}

	shopifyRevenueF, _ := shopifyRevenue.Float64()
	wooRevenueF, _ := wooRevenue.Float64()
	totalRevenueF, _ := totalRevenue.Float64()
	channels := []ChannelRevenue{
		{Channel: "Shopify", Revenue: shopifyRevenueF},
		{Channel: "WooCommerce", Revenue: wooRevenueF},
		{Channel: "Meta Ads", Revenue: in.MetaAds.PerfNumber("total_revenue")},
		{Channel: "Google Ads", Revenue: in.GoogleAds.PerfNumber("total_revenue")},
		{Channel: "Pinterest", Revenue: in.PinterestAds.PerfNumber("total_revenue")},
	}

	traffic := []any{}
	var conversions ConversionMetrics
	if in.GoogleAnalytics != nil {
		if sources, ok := in.GoogleAnalytics["traffic_sources"].([]any); ok {
			if len(sources) > 5 {
				sources = sources[:5]
			}
			traffic = sources
		}
		overview, _ := in.GoogleAnalytics["website_overview"].(map[string]any)
		conv, _ := in.GoogleAnalytics["conversions"].(map[string]any)
		conversions = ConversionMetrics{
			WebsiteVisitors: valueOr(overview, "total_users", 0),
			ConversionRate:  valueOr(conv, "conversion_rate", "0%"),
			BounceRate:      valueOr(overview, "bounce_rate", "0%"),
		}
	} else {
		conversions = ConversionMetrics{WebsiteVisitors: 0, ConversionRate: "0%", BounceRate: "0%"}
	}

	avgOrderValueF, _ := avgOrderValue.Float64()
	return &Dashboard{
		Overview: DashboardOverview{
			TotalRevenue:     round2(totalRevenueF),
			TotalOrders:      totalOrders,
			AvgOrderValue:    round2(avgOrderValueF),
			TotalCustomers:   totalCustomers,
			TotalProducts:    len(products),
			TotalStock:       totalStock,
			LowStockProducts: lowStock,
			TotalAdSpend:     round2(adSpend),
			OverallROAS:      round2(roas),
		},
		OrderStatuses:    statuses,
		TopProducts:      top,
		RevenueByChannel: channels,
		TrafficSources:   traffic,
		MonthlyTrend: []MonthTrend{
			{Month: "Jan", Revenue: totalRevenueF * 0.85, Orders: float64(totalOrders) * 0.9},
			{Month: "Feb", Revenue: totalRevenueF, Orders: float64(totalOrders)},
		},
		ConversionMetrics: conversions,
	}
}

// AgentAnalyticsSummary is the headline block of the e-commerce agent
// analytics (Meta and Google only).
type AgentAnalyticsSummary struct {
	TotalProducts  int     `json:"total_products"`
	TotalOrders    int     `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	TotalAdSpend   float64 `json:"total_ad_spend"`
	TotalAdRevenue float64 `json:"total_ad_revenue"`
	OverallROAS    float64 `json:"overall_roas"`
}

type AgentAnalytics struct {
	Summary   AgentAnalyticsSummary `json:"summary"`
	MetaAds   map[string]any        `json:"meta_ads"`
	GoogleAds map[string]any        `json:"google_ads"`
}

// BuildAgentAnalytics computes the e-commerce agent summary from products,
// Shopify orders and the Meta/Google overall performance payloads.
func BuildAgentAnalytics(products *datasets.ProductCatalog, shopify *datasets.ShopifyData, meta, google *datasets.AdPlatformData) *AgentAnalytics {
	var orders []datasets.Order
	if shopify != nil {
		orders = shopify.Orders
	}

	revenue := decimal.Zero
	for _, order := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(order.Total))
	}
	avg := decimal.Zero
	if len(orders) > 0 {
		avg = revenue.Div(decimal.NewFromInt(int64(len(orders))))
	}

	adSpend := meta.PerfNumber("total_spend") + google.PerfNumber("total_spend")
	adRevenue := meta.PerfNumber("total_revenue") + google.PerfNumber("total_revenue")
	roas := 0.0
	if adSpend > 0 {
		roas = adRevenue / adSpend
	}

	totalProducts := 0
	if products != nil {
		totalProducts = len(products.Products)
	}

	revenueF, _ := revenue.Float64()
	avgF, _ := avg.Float64()
	analytics := &AgentAnalytics{
		Summary: AgentAnalyticsSummary{
			TotalProducts:  totalProducts,
			TotalOrders:    len(orders),
			TotalRevenue:   round2(revenueF),
			AvgOrderValue:  round2(avgF),
			TotalAdSpend:   adSpend,
			TotalAdRevenue: adRevenue,
			OverallROAS:    round2(roas),
		},
		MetaAds:   map[string]any{},
		GoogleAds: map[string]any{},
	}
	if meta != nil && meta.OverallPerformance != nil {
		analytics.MetaAds = meta.OverallPerformance
	}
	if google != nil && google.OverallPerformance != nil {
		analytics.GoogleAds = google.OverallPerformance
	}
	return analytics
}

func decimalRound2(v float64) (float64, bool) {
	return decimal.NewFromFloat(v).Round(2).Float64()
}

func valueOr(m map[string]any, key string, fallback any) any {
	if m != nil {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return fallback
}
