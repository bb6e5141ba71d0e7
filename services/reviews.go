package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"ecom-insights-service/datasets"
)

var (
	// ErrNoData means a filter yielded an empty set where data was required.
	ErrNoData = errors.New("no review data found")
	// ErrNotFound means a lookup matched nothing.
	ErrNotFound = errors.New("not found")
)

// ReviewCriteria are the optional review filter predicates. Zero values mean
// "no constraint"; a set criterion must equal the review field exactly, and
// a review missing the field fails the criterion. The date window is
// inclusive on both ends.
type ReviewCriteria struct {
	Platform  string
	Company   string
	Sentiment string
	Start     *time.Time
	End       *time.Time
}

// FilterReviews returns the ordered subsequence of reviews matching every
// set criterion.
func FilterReviews(reviews []datasets.Review, c ReviewCriteria) []datasets.Review {
	filtered := make([]datasets.Review, 0, len(reviews))
	for _, r := range reviews {
		if c.Platform != "" && r.Platform != c.Platform {
			continue
		}
		if c.Company != "" && r.Company != c.Company {
			continue
		}
		if c.Sentiment != "" && r.Sentiment != c.Sentiment {
			continue
		}
		if c.Start != nil && (!r.HasTime || r.TimePeriod.Before(*c.Start)) {
			continue
		}
		if c.End != nil && (!r.HasTime || r.TimePeriod.After(*c.End)) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// LastDays builds the inclusive [now-days, now] UTC window.
func LastDays(days int) ReviewCriteria {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)
	return ReviewCriteria{Start: &start, End: &end}
}

// Distribution is the overall sentiment breakdown of a review set.
type Distribution struct {
	Percentages map[string]float64
	Counts      map[string]int
	Total       int
	LastUpdated time.Time
}

// SentimentDistribution computes per-sentiment counts and percentages over
// the full set, plus the most recent review timestamp.
func SentimentDistribution(reviews []datasets.Review) (*Distribution, error) {
	if len(reviews) == 0 {
		return nil, ErrNoData
	}

	dist := &Distribution{
		Percentages: make(map[string]float64),
		Counts:      make(map[string]int),
		Total:       len(reviews),
	}
	for _, r := range reviews {
		if r.Sentiment != "" {
			dist.Counts[r.Sentiment]++
		}
		if r.HasTime && r.TimePeriod.After(dist.LastUpdated) {
			dist.LastUpdated = r.TimePeriod
		}
	}
	for sentiment, count := range dist.Counts {
		dist.Percentages[sentiment] = round2(float64(count) / float64(dist.Total) * 100)
	}
	return dist, nil
}

// TrendPoint is one month of the sentiment trend.
type TrendPoint struct {
	Month    string `json:"month"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}

// SentimentTrend groups reviews by YYYY-MM and counts the canonical
// sentiments, months ascending with missing sentiments zero-filled.
func SentimentTrend(reviews []datasets.Review) []TrendPoint {
	monthly := make(map[string]*TrendPoint)
	for _, r := range reviews {
		if !r.HasTime || r.Sentiment == "" {
			continue
		}
		month := r.TimePeriod.Format("2006-01")
		point, ok := monthly[month]
		if !ok {
			point = &TrendPoint{Month: month}
			monthly[month] = point
		}
		switch r.Sentiment {
		case "positive":
			point.Positive++
		case "negative":
			point.Negative++
		case "neutral":
			point.Neutral++
		}
	}

	trends := make([]TrendPoint, 0, len(monthly))
	for _, point := range monthly {
		trends = append(trends, *point)
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })
	return trends
}

// CategoryCount is one row of the category table.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TopCategories counts reviews by category, descending by count with ties
// keeping first-occurrence order, capped to limit.
func TopCategories(reviews []datasets.Review, limit int) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range reviews {
		if r.Category == "" {
			continue
		}
		if _, seen := counts[r.Category]; !seen {
			order = append(order, r.Category)
		}
		counts[r.Category]++
	}

	table := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		table = append(table, CategoryCount{Category: category, Count: counts[category]})
	}
	sort.SliceStable(table, func(i, j int) bool { return table[i].Count > table[j].Count })
	if limit > 0 && len(table) > limit {
		table = table[:limit]
	}
	return table
}

// FeedbackCategory is one humanized category tally within a month.
type FeedbackCategory struct {
	Category  string `json:"category"`
	Count     int    `json:"count"`
	Sentiment string `json:"sentiment"`
}

// MonthlyFeedback holds the top positive and negative feedback categories
// for one month.
type MonthlyFeedback struct {
	Month       string             `json:"month"`
	TopPositive []FeedbackCategory `json:"top_positive"`
	TopNegative []FeedbackCategory `json:"top_negative"`
}

// MonthlyFeedbackReport tallies overall_sentimental_category per month and
// polarity and returns the top 3 for each, category names humanized.
func MonthlyFeedbackReport(reviews []datasets.Review) []MonthlyFeedback {
	type tally struct {
		counts map[string]int
		order  []string
	}
	newTally := func() *tally { return &tally{counts: make(map[string]int)} }
	add := func(t *tally, category string) {
		if _, seen := t.counts[category]; !seen {
			t.order = append(t.order, category)
		}
		t.counts[category]++
	}
	top3 := func(t *tally, sentiment string) []FeedbackCategory {
		out := make([]FeedbackCategory, 0, len(t.order))
		for _, category := range t.order {
			out = append(out, FeedbackCategory{Category: category, Count: t.counts[category], Sentiment: sentiment})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
		if len(out) > 3 {
			out = out[:3]
		}
		return out
	}

	positive := make(map[string]*tally)
	negative := make(map[string]*tally)
	var months []string
	seen := make(map[string]bool)

	for _, r := range reviews {
		if !r.HasTime || r.SentimentCategory == "" {
			continue
		}
		if r.Sentiment != "positive" && r.Sentiment != "negative" {
			continue
		}
		month := r.TimePeriod.Format("2006-01")
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
			positive[month] = newTally()
			negative[month] = newTally()
		}
		category := Humanize(r.SentimentCategory)
		if r.Sentiment == "positive" {
			add(positive[month], category)
		} else {
			add(negative[month], category)
		}
	}

	sort.Strings(months)
	output := make([]MonthlyFeedback, 0, len(months))
	for _, month := range months {
		output = append(output, MonthlyFeedback{
			Month:       month,
			TopPositive: top3(positive[month], "positive"),
			TopNegative: top3(negative[month], "negative"),
		})
	}
	return output
}

// DetailStat is the count and percentage for one sentiment detail label.
type DetailStat struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DetailDistribution counts overall_sentiment_detail values and keeps only
// entries with at least 1% share. Returns the distribution, the total review
// count and the most recent timestamp.
func DetailDistribution(reviews []datasets.Review) (map[string]DetailStat, int, time.Time, error) {
	if len(reviews) == 0 {
		return nil, 0, time.Time{}, ErrNoData
	}

	total := len(reviews)
	counts := make(map[string]int)
	var lastUpdated time.Time
	for _, r := range reviews {
		if r.SentimentDetail != "" {
			counts[r.SentimentDetail]++
		}
		if r.HasTime && r.TimePeriod.After(lastUpdated) {
			lastUpdated = r.TimePeriod
		}
	}

	distribution := make(map[string]DetailStat)
	for detail, count := range counts {
		percentage := round2(float64(count) / float64(total) * 100)
		if percentage >= 1.0 {
			distribution[detail] = DetailStat{Count: count, Percentage: percentage}
		}
	}
	return distribution, total, lastUpdated, nil
}

// MonthlyAnalysis returns the first monthly report matching company, year
// and month.
func MonthlyAnalysis(reports []datasets.MonthlyReport, company string, year, month int) (map[string]any, error) {
	for _, report := range reports {
		if report.Company != company || !report.HasTime {
			continue
		}
		if report.TimePeriod.Year() == year && int(report.TimePeriod.Month()) == month {
			return report.Fields, nil
		}
	}
	return nil, ErrNotFound
}

// MonthOption is a selectable month for which a monthly report exists.
type MonthOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
}

// AvailableMonths lists up to 12 most recent report months for a company,
// descending.
func AvailableMonths(reports []datasets.MonthlyReport, company string) []MonthOption {
	months := make([]MonthOption, 0, len(reports))
	for _, report := range reports {
		if report.Company != company || !report.HasTime {
			continue
		}
		value := report.TimePeriod.Format("2006-01")
		months = append(months, MonthOption{
			Value: value,
			Label: value,
			Year:  report.TimePeriod.Year(),
			Month: int(report.TimePeriod.Month()),
		})
	}
	sort.SliceStable(months, func(i, j int) bool { return months[i].Value > months[j].Value })
	if len(months) > 12 {
		months = months[:12]
	}
	return months
}

// CompanyOption is one selectable company.
type CompanyOption struct {
	Value   string `json:"value"`
	Display string `json:"display"`
}

// Companies lists the distinct review companies, excluding internal demo
// fixtures, alphabetical by display name.
func Companies(reviews []datasets.Review) []CompanyOption {
	excluded := map[string]bool{"cook_and_pan": true}
	seen := make(map[string]bool)
	options := make([]CompanyOption, 0)
	for _, r := range reviews {
		if r.Company == "" || excluded[r.Company] || seen[r.Company] {
			continue
		}
		seen[r.Company] = true
		options = append(options, CompanyOption{Value: r.Company, Display: Humanize(r.Company)})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Display < options[j].Display })
	return options
}

// Humanize turns snake_case into Title Case words.
func Humanize(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func round2(v float64) float64 {
	f, _ := decimalRound2(v)
	return f
}
