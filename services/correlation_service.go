package services

import (
	"math"
	"sort"
	"strings"

	"flareguard/models"

	"gorm.io/gorm"
)

// TagCorrelation is the empirical association between a meal tag and
// high-risk days. Label keeps the first-seen casing; grouping is by the
// trimmed, lowercased form.
type TagCorrelation struct {
	Tag           string `json:"tag"`
	NormalizedTag string `json:"normalized_tag"`
	Count         int    `json:"count"`
	HighRiskShare int    `json:"high_risk_share"` // 0..100
}

// flag thresholds on HighRiskShare
const (
	flaggedShare = 50
	focusShare   = 40
)

// CorrelateTags ranks meal tags by how often they land on high-risk days.
// A tag occurrence counts as a high-risk hit when the same-date log scores
// at or above the high-risk threshold, or the meal itself was reported as a
// suspect reaction. Ranking: share descending, then count descending, then
// first-seen order.
func CorrelateTags(meals []models.MealLog, logs []models.DailyLog) []TagCorrelation {
	riskByDay := make(map[string]int, len(logs))
	for _, l := range logs {
		riskByDay[l.Date.Format("2006-01-02")] = l.RiskScore
	}

	type agg struct {
		label    string
		count    int
		highRisk int
	}
	byTag := map[string]*agg{}
	var order []string

	for _, meal := range meals {
		risk, hasLog := riskByDay[meal.Date.Format("2006-01-02")]
		highRiskDay := hasLog && risk >= highRiskThreshold
		suspectMeal := meal.Reaction == models.ReactionSuspect

		for _, tag := range meal.TagList() {
			normalized := strings.ToLower(strings.TrimSpace(tag))
			if normalized == "" {
				continue
			}
			a, ok := byTag[normalized]
			if !ok {
				a = &agg{label: strings.TrimSpace(tag)}
				byTag[normalized] = a
				order = append(order, normalized)
			}
			a.count++
			if highRiskDay || suspectMeal {
				a.highRisk++
			}
		}
	}

	out := make([]TagCorrelation, 0, len(order))
	for _, key := range order {
		a := byTag[key]
		share := 0
		if a.count > 0 {
			share = int(math.Round(float64(a.highRisk) / float64(a.count) * 100))
		}
		out = append(out, TagCorrelation{
			Tag:           a.label,
			NormalizedTag: key,
			Count:         a.count,
			HighRiskShare: share,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].HighRiskShare != out[j].HighRiskShare {
			return out[i].HighRiskShare > out[j].HighRiskShare
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// FlaggedTags returns the normalized tags whose share crosses the flag
// threshold, in rank order.
func FlaggedTags(correlations []TagCorrelation) []string {
	var flagged []string
	for _, c := range correlations {
		if c.HighRiskShare >= flaggedShare {
			flagged = append(flagged, c.NormalizedTag)
		}
	}
	return flagged
}

// FocusTrigger is the first ranked tag worth watching next week, if any.
func FocusTrigger(correlations []TagCorrelation) *TagCorrelation {
	for i := range correlations {
		if correlations[i].HighRiskShare >= focusShare {
			return &correlations[i]
		}
	}
	return nil
}

type CorrelationService struct {
	db *gorm.DB
}

func NewCorrelationService(db *gorm.DB) *CorrelationService {
	return &CorrelationService{db: db}
}

type CorrelationReport struct {
	Signals      []TagCorrelation `json:"signals"`
	FlaggedTags  []string         `json:"flagged_tags"`
	FocusTrigger *TagCorrelation  `json:"focus_trigger"`
}

func (s *CorrelationService) Correlations(userID uint) (*CorrelationReport, error) {
	var meals []models.MealLog
	if err := s.db.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	var logs []models.DailyLog
	if err := s.db.
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	signals := CorrelateTags(meals, logs)
	return &CorrelationReport{
		Signals:      signals,
		FlaggedTags:  FlaggedTags(signals),
		FocusTrigger: FocusTrigger(signals),
	}, nil
}
