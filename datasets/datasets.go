package datasets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Dataset errors, mapped to HTTP statuses by the handlers.
var (
	ErrDatasetMissing = errors.New("dataset missing")
	ErrDatasetInvalid = errors.New("dataset invalid")
)

// Fixed dataset file names, resolved against the configured data directory.
const (
	FileDemoData        = "demo_data.json"
	FileEmails          = "email-demo.json"
	FileProducts        = "product.json"
	FileShopify         = "shopify_demo.json"
	FileDHL             = "dhl_demo.json"
	FileStrategies      = "strategies.json"
	FileMetaAds         = "meta_ads.json"
	FileGoogleAds       = "google_ads.json"
	FilePinterestAds    = "pinterest_ads.json"
	FileGoogleAnalytics = "google_analytics.json"
	FileWooCommerce     = "woocommerce.json"
)

// Review is one entry of the sentiment analysis corpus. The typed fields are
// extracted for filtering and aggregation; Fields keeps the full payload for
// verbatim API responses, with time_period normalized to RFC3339 UTC.
type Review struct {
	Platform          string
	Company           string
	Sentiment         string
	SentimentDetail   string
	SentimentCategory string
	Category          string
	TimePeriod        time.Time
	HasTime           bool
	Fields            map[string]any
}

// MonthlyReport is a per-company monthly analysis document.
type MonthlyReport struct {
	Company    string
	TimePeriod time.Time
	HasTime    bool
	Fields     map[string]any
}

// DemoData is the parsed demo_data.json.
type DemoData struct {
	Reviews         []Review
	MonthlyReports  []MonthlyReport
	ShopifyInsights map[string]any
}

// EmailData is the parsed email-demo.json with timestamps normalized.
type EmailData struct {
	Emails     []map[string]any `json:"emails"`
	Statistics map[string]any   `json:"email_statistics"`
}

type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	Rating       float64 `json:"rating"`
	ReviewsCount int     `json:"reviews_count"`
}

type ProductCatalog struct {
	Products []Product `json:"products"`
}

type OrderItem struct {
	ProductID   string  `json:"product_id,omitempty"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price,omitempty"`
}

type OrderCustomer struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type Order struct {
	OrderNumber    string        `json:"order_number"`
	Status         string        `json:"status"`
	OrderDate      string        `json:"order_date"`
	Items          []OrderItem   `json:"items"`
	Total          float64       `json:"total"`
	Currency       string        `json:"currency"`
	TrackingNumber string        `json:"tracking_number"`
	Customer       OrderCustomer `json:"customer"`
}

type ShopifyData struct {
	Orders []Order `json:"orders"`
}

type ShipmentLocation struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country,omitempty"`
}

type ShipmentEvent struct {
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type Shipment struct {
	TrackingNumber    string           `json:"tracking_number"`
	Status            string           `json:"status"`
	ServiceType       string           `json:"service_type"`
	Origin            ShipmentLocation `json:"origin"`
	Destination       ShipmentLocation `json:"destination"`
	ShippedDate       string           `json:"shipped_date"`
	EstimatedDelivery string           `json:"estimated_delivery"`
	Events            []ShipmentEvent  `json:"events"`
}

type DHLData struct {
	Shipments []Shipment `json:"shipments"`
}

type StrategyData struct {
	Strategies []map[string]any `json:"strategies"`
}

// AdPlatformData covers meta_ads.json, google_ads.json and pinterest_ads.json.
// Campaign and performance payloads vary per platform, so they stay untyped.
type AdPlatformData struct {
	Campaigns          []map[string]any `json:"campaigns"`
	OverallPerformance map[string]any   `json:"overall_performance"`
}

// PerfNumber reads a numeric field from the overall performance payload.
func (a *AdPlatformData) PerfNumber(key string) float64 {
	if a == nil {
		return 0
	}
	return Number(a.OverallPerformance, key)
}

// WooData is the parsed woocommerce.json.
type WooData struct {
	Orders    []map[string]any `json:"orders"`
	Customers []map[string]any `json:"customers"`
	Analytics map[string]any   `json:"analytics"`
}

// Number reads a numeric field from a generic JSON object, tolerating
// missing keys and non-numeric values.
func Number(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

// Store reads the demo datasets from a fixed directory. Files are re-read on
// every call so edits on disk show up without a restart; the inputs are demo
// scale, so no caching is needed.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) read(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDatasetMissing, name)
		}
		return fmt.Errorf("%w: %s: %v", ErrDatasetMissing, name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDatasetInvalid, name, err)
	}
	return nil
}

// Demo loads demo_data.json and normalizes review and report timestamps to
// UTC instants so later comparisons are total orderings.
func (s *Store) Demo() (*DemoData, error) {
	var raw struct {
		Reviews         []map[string]any `json:"sentimental_analysis"`
		MonthlyReports  []map[string]any `json:"sentimental_monthly_reports"`
		ShopifyInsights map[string]any   `json:"shopify_insights_lifetime"`
	}
	if err := s.read(FileDemoData, &raw); err != nil {
		return nil, err
	}

	demo := &DemoData{ShopifyInsights: raw.ShopifyInsights}
	for _, m := range raw.Reviews {
		r, err := reviewFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDatasetInvalid, FileDemoData, err)
		}
		demo.Reviews = append(demo.Reviews, r)
	}
	for _, m := range raw.MonthlyReports {
		r, err := monthlyReportFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDatasetInvalid, FileDemoData, err)
		}
		demo.MonthlyReports = append(demo.MonthlyReports, r)
	}
	return demo, nil
}

// Emails loads email-demo.json, normalizing each email timestamp.
func (s *Store) Emails() (*EmailData, error) {
	var data EmailData
	if err := s.read(FileEmails, &data); err != nil {
		return nil, err
	}
	for _, email := range data.Emails {
		ts, ok := email["timestamp"].(string)
		if !ok {
			continue
		}
		t, err := ParseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: bad timestamp %q", ErrDatasetInvalid, FileEmails, ts)
		}
		email["timestamp"] = t.Format(time.RFC3339)
	}
	return &data, nil
}

func (s *Store) Products() (*ProductCatalog, error) {
	var data ProductCatalog
	if err := s.read(FileProducts, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *Store) Orders() (*ShopifyData, error) {
	var data ShopifyData
	if err := s.read(FileShopify, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *Store) Shipments() (*DHLData, error) {
	var data DHLData
	if err := s.read(FileDHL, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *Store) Strategies() (*StrategyData, error) {
	var data StrategyData
	if err := s.read(FileStrategies, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *Store) MetaAds() (*AdPlatformData, error) {
	return s.adPlatform(FileMetaAds)
}

func (s *Store) GoogleAds() (*AdPlatformData, error) {
	return s.adPlatform(FileGoogleAds)
}

func (s *Store) PinterestAds() (*AdPlatformData, error) {
	return s.adPlatform(FilePinterestAds)
}

func (s *Store) adPlatform(name string) (*AdPlatformData, error) {
	var data AdPlatformData
	if err := s.read(name, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *Store) GoogleAnalytics() (map[string]any, error) {
	var data map[string]any
	if err := s.read(FileGoogleAnalytics, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) WooCommerce() (*WooData, error) {
	var data WooData
	if err := s.read(FileWooCommerce, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ParseTimestamp accepts ISO-8601 with an optional zone; a trailing Z and
// zoneless values both resolve to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func reviewFromMap(m map[string]any) (Review, error) {
	r := Review{
		Platform:          stringField(m, "platform"),
		Company:           stringField(m, "company"),
		Sentiment:         stringField(m, "overall_sentiment"),
		SentimentDetail:   stringField(m, "overall_sentiment_detail"),
		SentimentCategory: stringField(m, "overall_sentimental_category"),
		Category:          stringField(m, "category"),
		Fields:            m,
	}
	if ts, ok := m["time_period"].(string); ok {
		t, err := ParseTimestamp(ts)
		if err != nil {
			return Review{}, err
		}
		r.TimePeriod = t
		r.HasTime = true
		m["time_period"] = t.Format(time.RFC3339)
	}
	return r, nil
}

func monthlyReportFromMap(m map[string]any) (MonthlyReport, error) {
	r := MonthlyReport{
		Company: stringField(m, "company"),
		Fields:  m,
	}
	if ts, ok := m["time_period"].(string); ok {
		t, err := ParseTimestamp(ts)
		if err != nil {
			return MonthlyReport{}, err
		}
		r.TimePeriod = t
		r.HasTime = true
		m["time_period"] = t.Format(time.RFC3339)
	}
	return r, nil
}
