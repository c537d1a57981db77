package services

import (
	"math"
	"sort"
	"strings"
	"time"

	"flareguard/models"

	"gorm.io/gorm"
)

// The waitlist component belongs to the marketing side of the launch. It is
// deliberately independent of the patient health engine: different data,
// different invariants, simpler aggregation.

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Note        string `json:"note"`
	Source      string `json:"source"`
	Plan        string `json:"plan"`
	UTMSource   string `json:"utm_source"`
	UTMCampaign string `json:"utm_campaign"`
}

type DailySignupCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type SourceBreakdown struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ConversionStats struct {
	Total          int     `json:"total"`
	Converted      int     `json:"converted"`
	Free           int     `json:"free"`
	ConversionRate float64 `json:"conversion_rate"` // percent, 1 decimal
}

type WaitlistAnalytics struct {
	DailySignups []DailySignupCount `json:"daily_signups"`
	Sources      []SourceBreakdown  `json:"sources"`
	Conversion   ConversionStats    `json:"conversion"`
}

type WaitlistService struct {
	db *gorm.DB
}

func NewWaitlistService(db *gorm.DB) *WaitlistService { return &WaitlistService{db: db} }

func (s *WaitlistService) AddSignup(req SignupRequest) (*models.WaitlistEntry, error) {
	plan := strings.TrimSpace(req.Plan)
	if plan == "" {
		plan = "waitlist"
	}
	entry := &models.WaitlistEntry{
		Email:       strings.TrimSpace(req.Email),
		Note:        strings.TrimSpace(req.Note),
		Source:      strings.TrimSpace(req.Source),
		Plan:        plan,
		UTMSource:   strings.TrimSpace(req.UTMSource),
		UTMCampaign: strings.TrimSpace(req.UTMCampaign),
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *WaitlistService) Analytics() (*WaitlistAnalytics, error) {
	var entries []models.WaitlistEntry
	if err := s.db.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return &WaitlistAnalytics{
		DailySignups: AggregateDailySignups(entries),
		Sources:      AggregateSources(entries),
		Conversion:   AggregateConversion(entries),
	}, nil
}

// AggregateDailySignups counts signups per calendar day, ascending by date.
func AggregateDailySignups(entries []models.WaitlistEntry) []DailySignupCount {
	counts := map[string]int{}
	for _, e := range entries {
		if e.CreatedAt.IsZero() {
			continue
		}
		counts[e.CreatedAt.Format("2006-01-02")]++
	}

	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DailySignupCount, 0, len(dates))
	for _, d := range dates {
		out = append(out, DailySignupCount{Date: d, Count: counts[d]})
	}
	return out
}

// AggregateSources groups signups by source (blank → "unknown"), title-cased
// for display, descending by count.
func AggregateSources(entries []models.WaitlistEntry) []SourceBreakdown {
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Source))
		if key == "" {
			key = "unknown"
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	out := make([]SourceBreakdown, 0, len(order))
	for _, key := range order {
		out = append(out, SourceBreakdown{Name: titleCase(key), Value: counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// AggregateConversion computes paid conversion; an empty waitlist yields a
// zero rate rather than dividing by zero.
func AggregateConversion(entries []models.WaitlistEntry) ConversionStats {
	total := len(entries)
	converted := 0
	for _, e := range entries {
		if e.Converted {
			converted++
		}
	}
	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(converted)/float64(total)*1000) / 10
	}
	return ConversionStats{
		Total:          total,
		Converted:      converted,
		Free:           total - converted,
		ConversionRate: rate,
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
