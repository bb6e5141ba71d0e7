package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"ecom-insights-service/datasets"
	"ecom-insights-service/models"
	"ecom-insights-service/services"
)

// SentimentHandler serves the review corpus reports.
type SentimentHandler struct {
	store *datasets.Store
}

func NewSentimentHandler(store *datasets.Store) *SentimentHandler {
	return &SentimentHandler{store: store}
}

func respondDatasetError(c *gin.Context, err error) {
	log.Errorf("dataset error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// demo loads demo_data.json, writing the error response on failure.
func (h *SentimentHandler) demo(c *gin.Context) (*datasets.DemoData, bool) {
	demo, err := h.store.Demo()
	if err != nil {
		respondDatasetError(c, err)
		return nil, false
	}
	return demo, true
}

// criteria builds the review filter from platform/company query params plus
// an optional days-based window. A bad days value fails with 400.
func criteria(c *gin.Context) (services.ReviewCriteria, bool) {
	crit := services.ReviewCriteria{
		Platform: c.Query("platform"),
		Company:  c.Query("company"),
	}
	if daysStr := c.Query("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return crit, false
		}
		window := services.LastDays(days)
		crit.Start = window.Start
		crit.End = window.End
	}
	return crit, true
}

// Companies lists distinct review companies.
func (h *SentimentHandler) Companies(c *gin.Context) {
	demo, ok := h.demo(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": services.Companies(demo.Reviews)})
}

// OverallByPlatform returns the sentiment distribution for the filtered set.
func (h *SentimentHandler) OverallByPlatform(c *gin.Context) {
	demo, ok := h.demo(c)
	if !ok {
		return
	}
	crit, ok := criteria(c)
	if !ok {
		return
	}

	dist, err := services.SentimentDistribution(services.FilterReviews(demo.Reviews, crit))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No review data found"})
		return
	}

	c.JSON(http.StatusOK, models.OverallReport{
		OverallSentiment: dist.Percentages,
		TotalReviews:     dist.Total,
		LastUpdated:      dist.LastUpdated,
		SentimentCounts:  dist.Counts,
	})
}

// Trends returns monthly sentiment counts.
func (h *SentimentHandler) Trends(c *gin.Context) {
	demo, ok := h.demo(c)
	if !ok {
		return
	}
	crit, ok := criteria(c)
	if !ok {
		return
	}
	trends := services.SentimentTrend(services.FilterReviews(demo.Reviews, crit))
	c.JSON(http.StatusOK, models.TrendReport{Trends: trends})
}

// MonthlyFeedback returns top positive/negative categories per month.
func (h *SentimentHandler) MonthlyFeedback(c *gin.Context) {
	demo, ok := h.demo(c)
	if !ok {
		return
	}
	crit, ok := criteria(c)
	if !ok {
		return
	}
	data := services.MonthlyFeedbackReport(services.FilterReviews(demo.Reviews, crit))
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// CategoryTable returns category counts, descending, capped to limit.
func (h *SentimentHandler) CategoryTable(c *gin.Context) {
	demo, ok := h.demo(c)
	if !ok {
		return
	}

	crit := services.ReviewCriteria{
		Platform:  c.Query("platform"),
		Company:   c.Query("company"),
		Sentiment: c.Query("sentiment"),
	}
	if startStr := c.Query("start_date"); startStr != "" {
		start, err := datasets.ParseTimestamp(startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be ISO-8601"})
			return
		}
		crit.Start = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := datasets.ParseTimestamp(endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be ISO-8601"})
			return
		}
		crit.End = &end
	}

	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	table := services.TopCategories(services.FilterReviews(demo.Reviews, crit), limit)
	c.JSON(http.StatusOK, gin.H{"table": table})
}

// OverallDetail returns the fine-grained sentiment detail distribution.
func (h *SentimentHandler) OverallDetail(c *gin.Context) {
	demo, ok := h.demo(c)
	if !ok {
		return
	}
	crit, ok := criteria(c)
	if !ok {
		return
	}

	distribution, total, lastUpdated, err := services.DetailDistribution(services.FilterReviews(demo.Reviews, crit))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No review data found for sentiment detail"})
		return
	}

	c.JSON(http.StatusOK, models.DetailReport{
		OverallSentimentDetail: distribution,
		TotalReviews:           total,
		LastUpdated:            lastUpdated,
	})
}

// AvailableMonths lists report months for a company, most recent first.
func (h *SentimentHandler) AvailableMonths(c *gin.Context) {
	company := c.Query("company")
	if company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company parameter is required"})
		return
	}
	demo, ok := h.demo(c)
	if !ok {
		return
	}
	months := services.AvailableMonths(demo.MonthlyReports, company)
	c.JSON(http.StatusOK, gin.H{"available_months": months})
}

// MonthlyAnalysis returns the monthly report for (company, year, month).
func (h *SentimentHandler) MonthlyAnalysis(c *gin.Context) {
	company := c.Query("company")
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if company == "" || yearStr == "" || monthStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company, year and month parameters are required"})
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be an integer"})
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be an integer"})
		return
	}

	demo, ok := h.demo(c)
	if !ok {
		return
	}

	report, err := services.MonthlyAnalysis(demo.MonthlyReports, company, year, month)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No data found for " + company + " in " + yearStr + "-" + pad2(month),
			})
			return
		}
		respondDatasetError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Reviews returns the paginated filtered review list.
func (h *SentimentHandler) Reviews(c *gin.Context) {
	demo, ok := h.demo(c)
	if !ok {
		return
	}

	crit := services.ReviewCriteria{
		Platform:  c.Query("platform"),
		Company:   c.Query("company"),
		Sentiment: c.Query("sentiment"),
	}
	skip := intQuery(c, "skip", 0)
	limit := intQuery(c, "limit", 20)

	filtered := services.FilterReviews(demo.Reviews, crit)
	if skip < 0 {
		skip = 0
	}
	if skip > len(filtered) {
		skip = len(filtered)
	}
	end := skip + limit
	if limit < 0 || end > len(filtered) {
		end = len(filtered)
	}

	page := make([]map[string]any, 0, end-skip)
	for _, r := range filtered[skip:end] {
		page = append(page, r.Fields)
	}
	c.JSON(http.StatusOK, gin.H{"reviews": page})
}

// ShopifyInsights returns the canned lifetime storefront summary.
func (h *SentimentHandler) ShopifyInsights(c *gin.Context) {
	demo, ok := h.demo(c)
	if !ok {
		return
	}
	data := demo.ShopifyInsights
	if len(data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Data not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"company":               data["company"],
		"total_gross_sales":     data["total_gross_sales"],
		"total_customers":       data["total_customers"],
		"total_orders":          data["total_orders"],
		"best_selling_products": data["best_selling_products"],
	})
}

// Emails returns the inbox with AI replies and its statistics.
func (h *SentimentHandler) Emails(c *gin.Context) {
	emails, err := h.store.Emails()
	if err != nil {
		respondDatasetError(c, err)
		return
	}
	list := emails.Emails
	if list == nil {
		list = []map[string]any{}
	}
	stats := emails.Statistics
	if stats == nil {
		stats = map[string]any{}
	}
	c.JSON(http.StatusOK, gin.H{"emails": list, "email_statistics": stats})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func pad2(n int) string {
	if n < 10 && n >= 0 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
