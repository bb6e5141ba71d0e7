package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ecom-insights-service/config"
	"ecom-insights-service/datasets"
	"ecom-insights-service/middleware"
	"ecom-insights-service/openai"
	"ecom-insights-service/services"
)

const demoFixture = `{
  "sentimental_analysis": [
    {"id": "r1", "platform": "trustpilot", "company": "acme", "overall_sentiment": "positive", "overall_sentiment_detail": "very_positive", "category": "delivery_speed", "time_period": "2024-03-01T10:00:00Z"},
    {"id": "r2", "platform": "trustpilot", "company": "acme", "overall_sentiment": "positive", "overall_sentiment_detail": "very_positive", "category": "delivery_speed", "time_period": "2024-03-02T10:00:00Z"},
    {"id": "r3", "platform": "trustpilot", "company": "acme", "overall_sentiment": "positive", "overall_sentiment_detail": "positive", "category": "product_quality", "time_period": "2024-03-03T10:00:00Z"},
    {"id": "r4", "platform": "google", "company": "acme", "overall_sentiment": "positive", "overall_sentiment_detail": "positive", "category": "product_quality", "time_period": "2024-03-04T10:00:00Z"},
    {"id": "r5", "platform": "google", "company": "acme", "overall_sentiment": "positive", "overall_sentiment_detail": "positive", "category": "customer_service", "time_period": "2024-03-05T10:00:00Z"},
    {"id": "r6", "platform": "google", "company": "beta", "overall_sentiment": "positive", "overall_sentiment_detail": "positive", "category": "customer_service", "time_period": "2024-03-06T10:00:00Z"},
    {"id": "r7", "platform": "trustpilot", "company": "acme", "overall_sentiment": "negative", "overall_sentiment_detail": "very_negative", "category": "shipping_cost", "time_period": "2024-03-07T10:00:00Z"},
    {"id": "r8", "platform": "google", "company": "acme", "overall_sentiment": "negative", "overall_sentiment_detail": "negative", "category": "shipping_cost", "time_period": "2024-03-08T10:00:00Z"},
    {"id": "r9", "platform": "google", "company": "beta", "overall_sentiment": "negative", "overall_sentiment_detail": "negative", "category": "pricing", "time_period": "2024-03-09T10:00:00Z"},
    {"id": "r10", "platform": "trustpilot", "company": "acme", "overall_sentiment": "neutral", "overall_sentiment_detail": "neutral", "category": "pricing", "time_period": "2024-03-10T10:00:00Z"}
  ],
  "sentimental_monthly_reports": [
    {"company": "acme", "time_period": "2024-01-15T00:00:00Z", "summary": "January report"},
    {"company": "acme", "time_period": "2024-03-15T00:00:00Z", "summary": "March report"},
    {"company": "acme", "time_period": "2024-02-15T00:00:00Z", "summary": "February report"}
  ],
  "shopify_insights_lifetime": {
    "company": "acme",
    "total_gross_sales": 125000.5,
    "total_customers": 480,
    "total_orders": 1320,
    "best_selling_products": [{"name": "Wireless Headphones", "units": 230}]
  }
}`

const productsFixture = `{"products": [
  {"id": "PROD-001", "name": "Wireless Headphones", "category": "Electronics", "description": "Noise-cancelling headphones", "price": 89.99, "stock": 42, "rating": 4.5, "reviews_count": 120},
  {"id": "PROD-002", "name": "Smart Watch", "category": "Electronics", "description": "Fitness tracking watch", "price": 199.99, "stock": 15, "rating": 4.2, "reviews_count": 40}
]}`

const ordersFixture = `{"orders": [
  {"order_number": "ORD-2024-001", "status": "shipped", "order_date": "2024-03-01T09:30:00Z", "total": 100.0, "currency": "USD", "tracking_number": "DHL-2024-TRK-001", "customer": {"email": "jane@example.com"}, "items": [{"product_name": "Wireless Headphones", "quantity": 1}]},
  {"order_number": "ORD-2024-002", "status": "processing", "order_date": "2024-03-05T10:00:00Z", "total": 50.0, "currency": "USD", "customer": {"email": "bob@example.com"}, "items": []}
]}`

const shipmentsFixture = `{"shipments": [
  {"tracking_number": "DHL-2024-TRK-001", "status": "in_transit", "service_type": "DHL Express",
   "origin": {"city": "Hamburg", "state": "HH"}, "destination": {"city": "Austin", "state": "TX"},
   "shipped_date": "2024-03-02T08:00:00Z", "estimated_delivery": "2024-03-08T00:00:00Z",
   "events": [{"timestamp": "2024-03-02T08:00:00Z", "description": "Picked up", "location": "Hamburg"}]}
]}`

const strategiesFixture = `{"strategies": [{"name": "Q2 growth push", "budget": 5000}]}`

const metaAdsFixture = `{"campaigns": [{"name": "meta-spring"}], "overall_performance": {"total_spend": 100.0, "total_revenue": 400.0, "overall_roas": 4.0}}`

const googleAdsFixture = `{"campaigns": [{"name": "google-brand"}], "overall_performance": {"total_spend": 200.0, "total_revenue": 500.0, "overall_roas": 2.5}}`

const pinterestAdsFixture = `{"campaigns": [], "overall_performance": {"total_spend": 50.0, "total_revenue": 100.0, "overall_roas": 2.0}}`

const googleAnalyticsFixture = `{
  "website_overview": {"total_users": 5000, "total_sessions": 8000, "bounce_rate": "40%"},
  "conversions": {"conversion_rate": "2.5%"},
  "traffic_sources": [{"source": "organic", "sessions": 4000}, {"source": "paid", "sessions": 2000}]
}`

const wooFixture = `{
  "orders": [{"status": "completed", "total": 50.0}],
  "customers": [{"email": "carol@example.com"}],
  "analytics": {"total_revenue": 50.0, "total_orders": 1, "total_products": 8}
}`

const emailsFixture = `{
  "emails": [{"id": "e1", "subject": "Where is my order?", "timestamp": "2024-03-10T12:00:00+02:00", "ai_reply": "On its way!"}],
  "email_statistics": {"total": 1, "replied": 1}
}`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	fixtures := map[string]string{
		datasets.FileDemoData:        demoFixture,
		datasets.FileProducts:        productsFixture,
		datasets.FileShopify:         ordersFixture,
		datasets.FileDHL:             shipmentsFixture,
		datasets.FileStrategies:      strategiesFixture,
		datasets.FileMetaAds:         metaAdsFixture,
		datasets.FileGoogleAds:       googleAdsFixture,
		datasets.FilePinterestAds:    pinterestAdsFixture,
		datasets.FileGoogleAnalytics: googleAnalyticsFixture,
		datasets.FileWooCommerce:     wooFixture,
		datasets.FileEmails:          emailsFixture,
	}
	for name, body := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

// newTestRouter wires the /api surface the way main does, against a fixture
// directory and an LLM endpoint (usually an httptest server).
func newTestRouter(t *testing.T, dir, llmURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := datasets.NewStore(dir)
	state := services.NewBotState()
	llm := openai.NewClient(&config.Config{
		OpenAIAPIKey:        "test-key",
		OpenAIModel:         "gpt-4o-mini",
		IntegrationProxyURL: llmURL,
	})

	sentimentHandler := NewSentimentHandler(store)
	botHandler := NewBotHandler(store, state)
	agentHandler := NewAgentHandler(store, state, llm)
	qualitativeHandler := NewQualitativeHandler(store)

	router := gin.New()
	api := router.Group("/api")
	{
		api.GET("/companies", sentimentHandler.Companies)
		api.GET("/report/overall_by_platform", sentimentHandler.OverallByPlatform)
		api.GET("/report/trends", sentimentHandler.Trends)
		api.GET("/report/monthly_feedback", sentimentHandler.MonthlyFeedback)
		api.GET("/report/category_table", sentimentHandler.CategoryTable)
		api.GET("/report/overall_detail", sentimentHandler.OverallDetail)
		api.GET("/report/available_months", sentimentHandler.AvailableMonths)
		api.GET("/report/monthly_analysis", sentimentHandler.MonthlyAnalysis)
		api.GET("/reviews", sentimentHandler.Reviews)
		api.GET("/shopify_insights", sentimentHandler.ShopifyInsights)
		api.GET("/emails", sentimentHandler.Emails)

		bot := api.Group("/bot")
		{
			bot.GET("/knowledge-base", botHandler.KnowledgeBase)
			bot.POST("/knowledge-base", botHandler.UpdateKnowledgeBase)
			bot.GET("/instructions", botHandler.Instructions)
			bot.POST("/instructions", botHandler.UpdateInstructions)
			bot.GET("/connectors/products", botHandler.Products)
			bot.GET("/connectors/shopify/order/:order_number", botHandler.Order)
			bot.GET("/connectors/dhl/tracking/:tracking_number", botHandler.Tracking)
			bot.GET("/connectors/status", botHandler.ConnectorsStatus)
		}

		agent := api.Group("/ecom-agent")
		{
			agent.GET("/knowledge-base", agentHandler.KnowledgeBase)
			agent.POST("/knowledge-base", agentHandler.UpdateKnowledgeBase)
			agent.GET("/connectors", agentHandler.Connectors)
			agent.GET("/analytics", agentHandler.Analytics)
		}

		qualitative := api.Group("/qualitative")
		{
			qualitative.GET("/connectors", qualitativeHandler.Connectors)
			qualitative.GET("/dashboard", qualitativeHandler.Dashboard)
		}

		chat := api.Group("/")
		chat.Use(middleware.RateLimit(100, time.Minute))
		{
			chat.POST("/bot/chat", botHandler.Chat)
			chat.POST("/ecom-agent/chat", agentHandler.Chat)
		}
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	parsed := map[string]any{}
	if w.Body.Len() > 0 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestOverallByPlatform(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/report/overall_by_platform", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10.0, body["total_reviews"])

	sentiment := body["overall_sentiment"].(map[string]any)
	assert.Equal(t, 60.0, sentiment["positive"])
	assert.Equal(t, 30.0, sentiment["negative"])
	assert.Equal(t, 10.0, sentiment["neutral"])

	counts := body["sentiment_counts"].(map[string]any)
	assert.Equal(t, 6.0, counts["positive"])
}

func TestOverallByPlatform_PlatformFilter(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/report/overall_by_platform?platform=trustpilot", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5.0, body["total_reviews"])
}

func TestOverallByPlatform_NoMatchIs404(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/report/overall_by_platform?platform=yelp", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No review data found", body["error"])
}

func TestOverallByPlatform_BadDays(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, _ := doJSON(t, router, "GET", "/api/report/overall_by_platform?days=zero", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompanies(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/companies", "")
	assert.Equal(t, http.StatusOK, w.Code)
	companies := body["companies"].([]any)
	assert.Len(t, companies, 2)
}

func TestAvailableMonths(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, _ := doJSON(t, router, "GET", "/api/report/available_months?company=acme", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Most recent month first
	raw := w.Body.String()
	march := strings.Index(raw, "2024-03")
	february := strings.Index(raw, "2024-02")
	january := strings.Index(raw, "2024-01")
	assert.True(t, march >= 0 && february >= 0 && january >= 0)
	assert.Less(t, march, february)
	assert.Less(t, february, january)
}

func TestAvailableMonths_MissingCompany(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, _ := doJSON(t, router, "GET", "/api/report/available_months", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMonthlyAnalysis(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/report/monthly_analysis?company=acme&year=2024&month=3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "March report", body["summary"])
}

func TestMonthlyAnalysis_NotFound(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/report/monthly_analysis?company=acme&year=2025&month=1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No data found for acme in 2025-01", body["error"])
}

func TestReviews_Pagination(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/reviews?skip=4&limit=3", "")
	assert.Equal(t, http.StatusOK, w.Code)

	reviews := body["reviews"].([]any)
	assert.Len(t, reviews, 3)
	first := reviews[0].(map[string]any)
	assert.Equal(t, "r5", first["id"])
}

func TestReviews_SkipBeyondEnd(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/reviews?skip=100", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["reviews"])
}

func TestShopifyInsights(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/shopify_insights", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acme", body["company"])
	assert.Equal(t, 125000.5, body["total_gross_sales"])
}

func TestEmails_NormalizesTimestamps(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/emails", "")
	assert.Equal(t, http.StatusOK, w.Code)
	emails := body["emails"].([]any)
	assert.Len(t, emails, 1)
	assert.Equal(t, "2024-03-10T10:00:00Z", emails[0].(map[string]any)["timestamp"])
}

func TestMissingDatasetIs500(t *testing.T) {
	router := newTestRouter(t, t.TempDir(), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/companies", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, body["error"], datasets.FileDemoData)
}

func TestBotKnowledgeBase_RoundTrip(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "POST", "/api/bot/knowledge-base", `{"content": "New return policy: 60 days."}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Knowledge base updated", body["message"])

	w, body = doJSON(t, router, "GET", "/api/bot/knowledge-base", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New return policy: 60 days.", body["knowledge_base"])
}

func TestBotKnowledgeBase_MissingContent(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, _ := doJSON(t, router, "POST", "/api/bot/knowledge-base", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBotInstructions_RoundTrip(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, _ := doJSON(t, router, "POST", "/api/bot/instructions", `{"instructions": "Always greet by name."}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := doJSON(t, router, "GET", "/api/bot/instructions", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Always greet by name.", body["instructions"])
}

func TestBotProducts_ByID(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/bot/connectors/products?product_id=prod-001", "")
	assert.Equal(t, http.StatusOK, w.Code)
	product := body["product"].(map[string]any)
	assert.Equal(t, "Wireless Headphones", product["name"])

	w, _ = doJSON(t, router, "GET", "/api/bot/connectors/products?product_id=PROD-999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBotProducts_Search(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/bot/connectors/products?search=watch", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, body["count"])
}

func TestBotOrderLookup(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/bot/connectors/shopify/order/ord-2024-001", "")
	assert.Equal(t, http.StatusOK, w.Code)
	order := body["order"].(map[string]any)
	assert.Equal(t, "ORD-2024-001", order["order_number"])

	w, body = doJSON(t, router, "GET", "/api/bot/connectors/shopify/order/ORD-0000-000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order ORD-0000-000 not found", body["error"])
}

func TestBotTrackingLookup(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/bot/connectors/dhl/tracking/dhl-2024-trk-001", "")
	assert.Equal(t, http.StatusOK, w.Code)
	shipment := body["shipment"].(map[string]any)
	assert.Equal(t, "in_transit", shipment["status"])

	w, _ = doJSON(t, router, "GET", "/api/bot/connectors/dhl/tracking/DHL-0000", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBotConnectorsStatus(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/bot/connectors/status", "")
	assert.Equal(t, http.StatusOK, w.Code)

	connectors := body["connectors"].([]any)
	assert.Len(t, connectors, 3)
	records := map[string]float64{}
	for _, raw := range connectors {
		c := raw.(map[string]any)
		records[c["name"].(string)] = c["records"].(float64)
	}
	assert.Equal(t, 2.0, records["Product Catalog"])
	assert.Equal(t, 2.0, records["Shopify Orders"])
	assert.Equal(t, 1.0, records["DHL Tracking"])
}

func TestBotChat_OrderStatus(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "POST", "/api/bot/chat", `{"message": "where is ORD-2024-001?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "shopify_connector", body["data_source"])
	assert.Contains(t, body["response"], "**Status:** Shipped")
}

func TestBotChat_MissingMessage(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, _ := doJSON(t, router, "POST", "/api/bot/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBotChat_DatasetFailureStaysInBand(t *testing.T) {
	router := newTestRouter(t, t.TempDir(), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "POST", "/api/bot/chat", `{"message": "hello"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, supportApology, body["response"])
	assert.NotEmpty(t, body["error"])
}

func TestAgentKnowledgeBase_IsSeparateFromBot(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, _ := doJSON(t, router, "POST", "/api/ecom-agent/knowledge-base", `{"content": "agent notes"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	_, agentBody := doJSON(t, router, "GET", "/api/ecom-agent/knowledge-base", "")
	assert.Equal(t, "agent notes", agentBody["knowledge_base"])

	_, botBody := doJSON(t, router, "GET", "/api/bot/knowledge-base", "")
	assert.NotEqual(t, "agent notes", botBody["knowledge_base"])
}

func TestAgentChat_Success(t *testing.T) {
	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"message": {"content": "You have 2 products in the catalog."}}]}`))
	}))
	defer llm.Close()

	router := newTestRouter(t, writeFixtures(t), llm.URL)

	w, body := doJSON(t, router, "POST", "/api/ecom-agent/chat", `{"message": "what products do we sell?"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	response := body["response"].(string)
	assert.Contains(t, response, "You have 2 products in the catalog.")
	assert.Contains(t, response, "📚 **Sources Used:**")
	assert.Contains(t, response, "- "+datasets.FileProducts)

	sources := body["sources"].([]any)
	assert.Equal(t, []any{datasets.FileProducts}, sources)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.Greater(t, body["data_context_size"], 0.0)
	assert.Nil(t, body["error"])
}

func TestAgentChat_LLMFailureStaysInBand(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "POST", "/api/ecom-agent/chat", `{"message": "what products do we sell?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["response"], "I apologize, but I encountered an error processing your request")
	assert.NotEmpty(t, body["error"])
	assert.Empty(t, body["sources"])
}

func TestAgentConnectors(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/ecom-agent/connectors", "")
	assert.Equal(t, http.StatusOK, w.Code)

	connectors := body["connectors"].([]any)
	assert.Len(t, connectors, 6)
	records := map[string]float64{}
	for _, raw := range connectors {
		c := raw.(map[string]any)
		records[c["name"].(string)] = c["records"].(float64)
	}
	assert.Equal(t, 1.0, records["Marketing Strategies"])
	assert.Equal(t, 1.0, records["Meta Ads"])
	assert.Equal(t, 1.0, records["Google Ads"])
}

func TestAgentAnalytics(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/ecom-agent/analytics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	summary := body["summary"].(map[string]any)
	assert.Equal(t, 2.0, summary["total_products"])
	assert.Equal(t, 2.0, summary["total_orders"])
	assert.Equal(t, 150.0, summary["total_revenue"])
	assert.Equal(t, 75.0, summary["avg_order_value"])
	assert.Equal(t, 300.0, summary["total_ad_spend"])
	assert.Equal(t, 3.0, summary["overall_roas"])
}

func TestQualitativeConnectors(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/qualitative/connectors", "")
	assert.Equal(t, http.StatusOK, w.Code)

	connectors := body["connectors"].([]any)
	assert.Len(t, connectors, 6)

	meta := connectors[0].(map[string]any)
	assert.Equal(t, "Meta Ads", meta["name"])
	assert.Equal(t, 4.0, meta["roas"])

	shopify := connectors[4].(map[string]any)
	assert.Equal(t, "Shopify", shopify["name"])
	assert.Equal(t, 2.0, shopify["orders"])
	assert.Equal(t, 150.0, shopify["total_revenue"])
}

func TestQualitativeDashboard(t *testing.T) {
	router := newTestRouter(t, writeFixtures(t), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/qualitative/dashboard", "")
	assert.Equal(t, http.StatusOK, w.Code)

	overview := body["overview"].(map[string]any)
	assert.Equal(t, 3.0, overview["total_orders"], "2 Shopify + 1 Woo")
	assert.Equal(t, 200.0, overview["total_revenue"], "150 Shopify + 50 Woo")
	assert.Equal(t, 3.0, overview["total_customers"], "2 Shopify emails + 1 Woo customer")
	assert.Equal(t, 350.0, overview["total_ad_spend"])

	statuses := body["order_statuses"].(map[string]any)
	assert.Equal(t, 1.0, statuses["shipped"])
	assert.Equal(t, 1.0, statuses["processing"])
	assert.Equal(t, 1.0, statuses["completed"])
}

func TestQualitativeDashboard_MissingDatasetsYieldZeros(t *testing.T) {
	router := newTestRouter(t, t.TempDir(), "http://127.0.0.1:1")

	w, body := doJSON(t, router, "GET", "/api/qualitative/dashboard", "")
	assert.Equal(t, http.StatusOK, w.Code)

	overview := body["overview"].(map[string]any)
	assert.Equal(t, 0.0, overview["total_orders"])
	assert.Equal(t, 0.0, overview["total_revenue"])
}
