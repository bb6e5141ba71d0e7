package main

import (
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ecom-insights-service/config"
	"ecom-insights-service/datasets"
	"ecom-insights-service/handlers"
	"ecom-insights-service/middleware"
	"ecom-insights-service/openai"
	"ecom-insights-service/services"
	"ecom-insights-service/version"
)

const serviceName = "ecom-insights-service"

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using system environment variables")
	}

	cfg := config.Load()
	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY is not set, LLM chat will return in-band errors")
	}

	log.Infof("Starting %s, datasets from %s", serviceName, cfg.DataDir)

	store := datasets.NewStore(cfg.DataDir)
	botState := services.NewBotState()
	llm := openai.NewClient(cfg)

	sentimentHandler := handlers.NewSentimentHandler(store)
	botHandler := handlers.NewBotHandler(store, botState)
	agentHandler := handlers.NewAgentHandler(store, botState, llm)
	qualitativeHandler := handlers.NewQualitativeHandler(store)

	router := gin.Default()

	// CORS middleware, fully open for the demo frontend
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "*")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "B2B Sentiment Analysis API",
			"version": "1.0",
			"endpoints": gin.H{
				"companies": "/api/companies",
				"reports":   "/api/report/*",
				"reviews":   "/api/reviews",
				"shopify":   "/api/shopify_insights",
			},
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": serviceName,
			"version": version.Get(serviceName),
		})
	})

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

		// Chat endpoints are rate limited per client IP
		chat := api.Group("/")
		chat.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		{
			chat.POST("/bot/chat", botHandler.Chat)
			chat.POST("/ecom-agent/chat", agentHandler.Chat)
		}
	}

	addr := cfg.Host + ":" + cfg.Port
	log.Infof("%s listening on %s", serviceName, addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
